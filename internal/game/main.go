package game

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Options configures a desktop run.
type Options struct {
	TileCount int
	Seed      uint64
	Tuning    *TuningHolder
	Store     ScoreStore     // nil disables persistence
	Publish   func(Snapshot) // nil disables spectator publishing
	Mute      bool
}

// Run owns the window, the GL context and the frame loop. It blocks until
// the window closes.
func Run(opts Options) error {
	runtime.LockOSThread()

	if opts.TileCount == 0 {
		opts.TileCount = DefaultTileCount
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.Tuning == nil {
		opts.Tuning = NewTuningHolder(DefaultTuning())
	}

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	audio, err := NewAudioSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		audio = nil
	}
	defer audio.Shutdown()
	if opts.Mute && audio != nil {
		audio.ToggleMute()
	}
	if audio != nil {
		// Let the audio context finish initializing before music starts.
		go func() {
			time.Sleep(100 * time.Millisecond)
			audio.StartMusic()
		}()
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(
		float32(Palette.Background.R)/255.0,
		float32(Palette.Background.G)/255.0,
		float32(Palette.Background.B)/255.0,
		1.0,
	)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	g := NewGame(opts.TileCount, opts.Seed, opts.Tuning, opts.Store)
	particles := NewParticleSystem(MaxParticles, opts.Seed^0xBEAD)
	cam := Camera{}
	audio.Attach(g.Events)
	wireEffects(g, particles, &cam)

	input := NewInput()

	var glowBuf, normBuf, spriteBuf []float32

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		input.Handle(window, g, audio)
		g.Advance(time.Duration(dt * float64(time.Second)))
		particles.Update(dt)

		cam.FitBoard(g.Snapshot().TileCount, fbW, fbH)
		if g.Session.ShakeEnabled {
			cam.UpdateShake(dt, opts.Seed^uint64(now*1000))
		} else {
			cam.ShakeTimer = 0
			cam.ShakeX, cam.ShakeY = 0, 0
		}
		renderCam := cam
		renderCam.X, renderCam.Y = cam.EffectivePos()

		snap := g.Snapshot()

		rend.BeginFrame(fbW, fbH)
		rend.DrawBoard(snap.TileCount, renderCam, fbW, fbH)

		spriteBuf = FoodGlowSprites(snap, snap.Clock.Seconds(), spriteBuf[:0])
		rend.DrawGlowSprites(spriteBuf, renderCam, fbW, fbH)
		spriteBuf = FoodSprites(snap, snap.Clock.Seconds(), spriteBuf[:0])
		rend.DrawSprites(spriteBuf, renderCam, fbW, fbH)
		spriteBuf = SnakeSprites(snap, snap.Clock.Seconds(), spriteBuf[:0])
		rend.DrawSprites(spriteBuf, renderCam, fbW, fbH)

		glowBuf, normBuf = particles.RenderData(glowBuf, normBuf)
		rend.DrawSprites(normBuf, renderCam, fbW, fbH)
		rend.DrawGlowSprites(glowBuf, renderCam, fbW, fbH)

		// HUD ignores camera shake.
		rend.RenderHUD(g, fbW, fbH, now)

		if opts.Publish != nil {
			opts.Publish(snap)
		}

		window.SwapBuffers()
	}
	return nil
}

// wireEffects subscribes particle bursts and camera shake to gameplay events.
func wireEffects(g *Game, particles *ParticleSystem, cam *Camera) {
	at := func(c Cell) (float64, float64) {
		return float64(c.X) + 0.5, float64(c.Y) + 0.5
	}
	g.Events.Subscribe(EventFoodEaten, func(e Event) {
		x, y := at(e.Cell)
		particles.SpawnBurst(x, y, FoodKind(e.Data).Color(), 26)
		particles.SpawnSparkle(x, y, Palette.TextScore, 8)
	})
	g.Events.Subscribe(EventFoodExpired, func(e Event) {
		x, y := at(e.Cell)
		particles.SpawnGlowBurst(x, y, Palette.TextDim, 10)
	})
	g.Events.Subscribe(EventNearMiss, func(e Event) {
		x, y := at(e.Cell)
		particles.SpawnGlowBurst(x, y, Palette.SnakeLucky, 22)
		cam.AddShake(ShakeNearMiss, ShakeNearMissTime)
	})
	g.Events.Subscribe(EventTailCut, func(e Event) {
		x, y := at(e.Cell)
		particles.SpawnBurst(x, y, Palette.CutFlash, 34)
		cam.AddShake(ShakeTailCut, ShakeTailCutTime)
	})
	g.Events.Subscribe(EventDeath, func(Event) {
		x, y := at(g.Grid.Head())
		particles.SpawnBurst(x, y, Palette.TextWarn, 60)
		particles.SpawnGlowBurst(x, y, Palette.TextWarn, 30)
		cam.AddShake(ShakeDeath, ShakeDeathTime)
	})
	g.Events.Subscribe(EventNewHighScore, func(Event) {
		g.AddBanner("NEW HIGH SCORE!", Palette.TextGood)
	})
}
