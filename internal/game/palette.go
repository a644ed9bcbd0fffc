package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

var Palette = struct {
	Background  RGB
	BoardLight  RGB
	BoardDark   RGB
	BoardBorder RGB
	SnakeHead   RGB
	SnakeBody   RGB
	SnakeLucky  RGB // body flash right after a luck escape
	CutFlash    RGB
	Glow        RGB
	TextMain    RGB
	TextDim     RGB
	TextScore   RGB
	TextWarn    RGB
	TextGood    RGB
}{
	Background:  RGB{R: 14, G: 16, B: 22},
	BoardLight:  RGB{R: 34, G: 40, B: 52},
	BoardDark:   RGB{R: 27, G: 32, B: 42},
	BoardBorder: RGB{R: 70, G: 82, B: 104},
	SnakeHead:   RGB{R: 130, G: 240, B: 110},
	SnakeBody:   RGB{R: 70, G: 190, B: 90},
	SnakeLucky:  RGB{R: 240, G: 230, B: 110},
	CutFlash:    RGB{R: 255, G: 90, B: 70},
	Glow:        RGB{R: 255, G: 200, B: 90},
	TextMain:    RGB{R: 235, G: 238, B: 245},
	TextDim:     RGB{R: 140, G: 148, B: 165},
	TextScore:   RGB{R: 255, G: 255, B: 160},
	TextWarn:    RGB{R: 255, G: 90, B: 80},
	TextGood:    RGB{R: 110, G: 255, B: 120},
}
