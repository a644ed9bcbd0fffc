package game

import (
	"fmt"
	"math"
	"time"
)

// centreString queues text horizontally centred at screen y.
func (r *Renderer) centreString(text string, fbW, sy int, scale float32, col RGB, alpha float32) {
	x := (fbW - TextWidth(text, scale)) / 2
	r.DrawStringAlpha(text, x, sy, scale, col, alpha)
}

func fmtDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// RenderHUD draws the text overlays for the current phase plus any floating
// banners, then flushes the text batch.
func (r *Renderer) RenderHUD(g *Game, fbW, fbH int, now float64) {
	s := g.Session
	switch s.Phase {
	case PhaseNotStarted:
		r.titleScreen(s, fbW, fbH, now)
	case PhaseRunning:
		r.runningHUD(g, fbW, fbH)
	case PhasePaused:
		r.runningHUD(g, fbW, fbH)
		r.centreString("PAUSED", fbW, fbH/2-FontCellH*2, 4, Palette.TextMain, 1)
		r.centreString("SPACE TO RESUME", fbW, fbH/2+FontCellH*3, 2, Palette.TextDim, 1)
	case PhaseTransition:
		r.runningHUD(g, fbW, fbH)
		// Red flash that pulses for the duration of the transition.
		flash := float32(0.5 + 0.5*math.Sin(now*24))
		r.centreString("CRASHED", fbW, fbH/2-FontCellH*2, 4, Palette.TextWarn, flash)
	case PhaseGameOver:
		r.gameOverScreen(s, fbW, fbH, now)
	}

	r.drawBanners(g, fbW, fbH)
	r.FlushText(fbW, fbH)
}

func (r *Renderer) titleScreen(s *GameSession, fbW, fbH int, now float64) {
	r.centreString("LUCKY SNAKE", fbW, fbH/3, 6, Palette.TextScore, 1)
	blink := float32(0.55 + 0.45*math.Sin(now*3))
	r.centreString("PRESS ENTER", fbW, fbH/2, 3, Palette.TextMain, blink)

	y := fbH/2 + FontCellH*5
	for _, line := range []string{
		"ARROWS / WASD  STEER",
		"SPACE          PAUSE",
		"L              TOGGLE LUCK",
		"M              MUTE",
	} {
		r.centreString(line, fbW, y, 2, Palette.TextDim, 1)
		y += FontCellH * 2
	}
	if s.HighScore > 0 {
		r.centreString(fmt.Sprintf("BEST %d", s.HighScore), fbW, y+FontCellH, 2, Palette.TextGood, 1)
	}
}

func (r *Renderer) runningHUD(g *Game, fbW, fbH int) {
	s := g.Session
	r.DrawString(fmt.Sprintf("SCORE %d", s.Score), FontCellW, FontCellH, 2, Palette.TextScore)
	best := fmt.Sprintf("BEST %d", s.HighScore)
	r.DrawString(best, fbW-TextWidth(best, 2)-FontCellW, FontCellH, 2, Palette.TextDim)

	if !s.LuckEnabled {
		warn := "LUCK OFF"
		r.DrawString(warn, fbW-TextWidth(warn, 2)-FontCellW, FontCellH*4, 2, Palette.TextWarn)
	}
}

func (r *Renderer) gameOverScreen(s *GameSession, fbW, fbH int, now float64) {
	r.centreString("GAME OVER", fbW, fbH/3, 5, Palette.TextWarn, 1)

	y := fbH/2 - FontCellH
	r.centreString(fmt.Sprintf("SCORE %d", s.Score), fbW, y, 3, Palette.TextScore, 1)
	y += FontCellH * 4
	if s.NewHigh {
		blink := float32(0.5 + 0.5*math.Sin(now*6))
		r.centreString("NEW HIGH SCORE!", fbW, y, 3, Palette.TextGood, blink)
	} else {
		r.centreString(fmt.Sprintf("BEST %d", s.HighScore), fbW, y, 2, Palette.TextDim, 1)
	}
	y += FontCellH * 4
	r.centreString(fmt.Sprintf("LENGTH %d   TIME %s", s.PeakLen, fmtDuration(s.PlayTime)),
		fbW, y, 2, Palette.TextDim, 1)
	y += FontCellH * 4
	r.centreString("ENTER TO PLAY AGAIN", fbW, y, 2, Palette.TextMain, 1)
}

// drawBanners renders the floating announcement stack under the score line.
// Banners fade out over their final BannerFadeTime seconds.
func (r *Renderer) drawBanners(g *Game, fbW, fbH int) {
	y := FontCellH * 5
	for _, b := range g.Banners {
		alpha := float32(1)
		if b.Life < BannerFadeTime {
			alpha = float32(b.Life / BannerFadeTime)
		}
		r.centreString(b.Text, fbW, y, 3, b.Col, alpha)
		y += FontCellH * 4
	}
}
