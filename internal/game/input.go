package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input decodes GLFW keys into core calls. All gesture decoding lives
// here; the core only ever sees RequestDirection/Toggle calls.
type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Handle translates this frame's key edges into core API calls.
func (in *Input) Handle(window *glfw.Window, g *Game, audio *AudioSystem) {
	// Steering: arrows and WASD, edge-triggered so a held key repeats
	// its speed effect once per press, not per frame.
	dirKeys := []struct {
		keys []glfw.Key
		dir  Dir
	}{
		{[]glfw.Key{glfw.KeyUp, glfw.KeyW}, DirUp},
		{[]glfw.Key{glfw.KeyDown, glfw.KeyS}, DirDown},
		{[]glfw.Key{glfw.KeyLeft, glfw.KeyA}, DirLeft},
		{[]glfw.Key{glfw.KeyRight, glfw.KeyD}, DirRight},
	}
	for _, dk := range dirKeys {
		for _, k := range dk.keys {
			if in.JustPressed(window, k) {
				g.RequestDirection(dk.dir)
			}
		}
	}

	if in.JustPressed(window, glfw.KeyEnter) {
		if g.Start() && audio != nil {
			audio.PlaySound(SoundMenuSelect)
		}
	}
	if in.JustPressed(window, glfw.KeySpace) || in.JustPressed(window, glfw.KeyP) {
		g.TogglePause()
	}
	if in.JustPressed(window, glfw.KeyL) {
		g.ToggleLuck()
	}
	if in.JustPressed(window, glfw.KeyV) {
		g.ToggleShake()
	}
	if in.JustPressed(window, glfw.KeyC) {
		g.CheatSpawn()
	}
	if in.JustPressed(window, glfw.KeyM) && audio != nil {
		audio.ToggleMute()
	}
}
