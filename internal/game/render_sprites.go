package game

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DrawSprites renders an array of point sprites using the sprite program.
// buf format: [x, y, size, r, g, b, a, roundness] * N (8 floats per sprite).
func (r *Renderer) DrawSprites(buf []float32, cam Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}

	count := len(buf) / 8
	if count > MaxParticleRender {
		count = MaxParticleRender
	}

	gl.UseProgram(r.spriteProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(r.spUCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.spUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.spUResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}

// DrawGlowSprites renders light sprites with additive blending and radial
// falloff. buf format matches DrawSprites; RGB pre-multiplied by brightness.
func (r *Renderer) DrawGlowSprites(buf []float32, cam Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > MaxParticleRender {
		count = MaxParticleRender
	}
	gl.UseProgram(r.glowProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	gl.Uniform2f(r.glowUCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.glowUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.glowUResolution, float32(fbW), float32(fbH))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

func cellCentre(c Cell) (float32, float32) {
	return float32(c.X) + 0.5, float32(c.Y) + 0.5
}

// SnakeSprites builds the snake's point-sprite buffer from a snapshot.
// The head is bigger and brighter; the body fades slightly toward the
// tail. Drawn tail-first so the head sits on top.
func SnakeSprites(snap Snapshot, clock float64, buf []float32) []float32 {
	buf = buf[:0]
	n := len(snap.Segments)
	for i := n - 1; i >= 0; i-- {
		x, y := cellCentre(snap.Segments[i])
		col := Palette.SnakeBody
		size := float32(CellSpriteSize * 0.9)
		round := float32(0.2)
		if i == 0 {
			col = Palette.SnakeHead
			size = CellSpriteSize
			round = 0.5
		} else {
			fade := float64(i) / float64(n) * 0.35
			col = lerpRGB(Palette.SnakeBody, Palette.BoardDark, fade)
		}
		buf = append(buf, x, y, size,
			float32(col.R)/255.0, float32(col.G)/255.0, float32(col.B)/255.0, 1.0, round)
	}
	return buf
}

// FoodSprites builds the food buffer; items pulse slowly and shrink in
// their final second of life so expiry reads.
func FoodSprites(snap Snapshot, clock float64, buf []float32) []float32 {
	buf = buf[:0]
	for _, f := range snap.Food {
		x, y := cellCentre(f.Pos)
		col := f.Kind.Color()
		pulse := 1.0 + 0.07*math.Sin(clock*5.0+float64(f.Pos.X+f.Pos.Y))
		size := CellSpriteSize * 0.78 * pulse
		left := (f.SpawnedAt + f.Lifetime - snap.Clock).Seconds()
		if left < 1.0 && left > 0 {
			size *= 0.4 + 0.6*left
		}
		buf = append(buf, x, y, float32(size),
			float32(col.R)/255.0, float32(col.G)/255.0, float32(col.B)/255.0, 1.0, 1.0)
	}
	return buf
}

// FoodGlowSprites builds the additive halo pass under the food.
func FoodGlowSprites(snap Snapshot, clock float64, buf []float32) []float32 {
	buf = buf[:0]
	for _, f := range snap.Food {
		x, y := cellCentre(f.Pos)
		col := f.Kind.Color()
		pulse := float32(0.22 + 0.08*math.Sin(clock*3.0+float64(f.Pos.Y)))
		buf = append(buf, x, y, FoodGlowSize,
			float32(col.R)/255.0*pulse, float32(col.G)/255.0*pulse, float32(col.B)/255.0*pulse,
			1.0, 0)
	}
	return buf
}
