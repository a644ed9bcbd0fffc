package game

import "time"

// SpeedController owns the current tick interval. Every mutation is
// multiplicative and clamps into [base/4, base*3], so play never freezes
// and never becomes instant.
type SpeedController struct {
	base    time.Duration
	current time.Duration
}

func NewSpeedController(base time.Duration) *SpeedController {
	return &SpeedController{base: base, current: base}
}

func (s *SpeedController) Interval() time.Duration { return s.current }
func (s *SpeedController) Base() time.Duration     { return s.base }

func (s *SpeedController) Min() time.Duration { return s.base / 4 }
func (s *SpeedController) Max() time.Duration { return s.base * 3 }

func (s *SpeedController) clamp() {
	if s.current < s.Min() {
		s.current = s.Min()
	}
	if s.current > s.Max() {
		s.current = s.Max()
	}
}

func (s *SpeedController) scale(factor float64) {
	s.current = time.Duration(float64(s.current) * factor)
	s.clamp()
}

// OnDirectionInput speeds up when the player holds the current direction
// and brakes on an exact reversal. Perpendicular input leaves the
// interval alone.
func (s *SpeedController) OnDirectionInput(requested, current Dir, tn *Tuning) {
	switch requested {
	case current:
		s.scale(tn.AccelFactor)
	case current.Opposite():
		s.scale(tn.BrakeFactor)
	}
}

// OnFoodEaten hastens play regardless of direction input.
func (s *SpeedController) OnFoodEaten(tn *Tuning) { s.scale(tn.EatFactor) }

// OnLuckEscape slows the pace briefly so an escape reads as a beat.
func (s *SpeedController) OnLuckEscape(tn *Tuning) { s.scale(tn.EscapeFactor) }

// Reset restores the base interval, optionally with a new base.
func (s *SpeedController) Reset(base time.Duration) {
	if base > 0 {
		s.base = base
	}
	s.current = s.base
}
