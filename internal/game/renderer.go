package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Board program.
	boardProg uint32
	boardVAO  uint32
	boardVBO  uint32

	uBoardSize  int32
	uCamera     int32
	uZoom       int32
	uResolution int32
	uTileCount  int32
	uColLight   int32
	uColDark    int32
	uColBorder  int32

	// Sprite program (snake, food, particles).
	spriteProg uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUCamera     int32
	spUZoom       int32
	spUResolution int32

	// Glow (radial light) program. Shares spriteVAO, additive blend only.
	glowProg        uint32
	glowUCamera     int32
	glowUZoom       int32
	glowUResolution int32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	boardProg, err := linkProgram(boardVertSrc, boardFragSrc)
	if err != nil {
		return nil, fmt.Errorf("board program: %w", err)
	}
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		gl.DeleteProgram(boardProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(boardProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{
		boardProg:  boardProg,
		spriteProg: spriteProg,
		glowProg:   glowProg,
	}

	// Board VAO/VBO: a unit quad (6 vertices, 2 triangles).
	var bVAO, bVBO uint32
	gl.GenVertexArrays(1, &bVAO)
	gl.GenBuffers(1, &bVBO)
	gl.BindVertexArray(bVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, bVBO)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.boardVAO = bVAO
	r.boardVBO = bVBO

	// Board uniforms.
	gl.UseProgram(boardProg)
	r.uBoardSize = gl.GetUniformLocation(boardProg, gl.Str("uBoardSize\x00"))
	r.uCamera = gl.GetUniformLocation(boardProg, gl.Str("uCamera\x00"))
	r.uZoom = gl.GetUniformLocation(boardProg, gl.Str("uZoom\x00"))
	r.uResolution = gl.GetUniformLocation(boardProg, gl.Str("uResolution\x00"))
	r.uTileCount = gl.GetUniformLocation(boardProg, gl.Str("uTileCount\x00"))
	r.uColLight = gl.GetUniformLocation(boardProg, gl.Str("uColLight\x00"))
	r.uColDark = gl.GetUniformLocation(boardProg, gl.Str("uColDark\x00"))
	r.uColBorder = gl.GetUniformLocation(boardProg, gl.Str("uColBorder\x00"))
	setUniformRGB(r.uColLight, Palette.BoardLight)
	setUniformRGB(r.uColDark, Palette.BoardDark)
	setUniformRGB(r.uColBorder, Palette.BoardBorder)

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxParticleRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	// Sprite uniforms.
	gl.UseProgram(spriteProg)
	r.spUCamera = gl.GetUniformLocation(spriteProg, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(spriteProg, gl.Str("uResolution\x00"))

	// Glow uniforms.
	gl.UseProgram(glowProg)
	r.glowUCamera = gl.GetUniformLocation(glowProg, gl.Str("uCamera\x00"))
	r.glowUZoom = gl.GetUniformLocation(glowProg, gl.Str("uZoom\x00"))
	r.glowUResolution = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func setUniformRGB(loc int32, c RGB) {
	gl.Uniform3f(loc, float32(c.R)/255.0, float32(c.G)/255.0, float32(c.B)/255.0)
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.boardVBO, r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.boardVAO, r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.boardProg, r.spriteProg, r.glowProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawBoard renders the checkerboard play field.
func (r *Renderer) DrawBoard(tileCount int, cam Camera, fbW, fbH int) {
	gl.UseProgram(r.boardProg)
	gl.BindVertexArray(r.boardVAO)

	gl.Uniform2f(r.uBoardSize, float32(tileCount), float32(tileCount))
	gl.Uniform2f(r.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.uZoom, float32(cam.Zoom))
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
	gl.Uniform1f(r.uTileCount, float32(tileCount))

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}
