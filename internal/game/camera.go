package game

// Camera maps board world units (one cell = one unit) to screen pixels.
// The board always fits the window; only shake moves the view.
type Camera struct {
	X, Y float64 // world units, camera centre
	Zoom float64 // screen pixels per world unit

	// Screen shake.
	ShakeX, ShakeY float64
	ShakeTimer     float64
	ShakeIntensity float64
}

// FitBoard centres the camera on the board and picks the zoom that fits
// tileCount cells plus the margin into the framebuffer.
func (c *Camera) FitBoard(tileCount, fbW, fbH int) {
	c.X = float64(tileCount) / 2
	c.Y = float64(tileCount) / 2
	span := float64(tileCount) + 2*BoardMargin
	minDim := float64(fbW)
	if float64(fbH) < minDim {
		minDim = float64(fbH)
	}
	c.Zoom = minDim / span
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	// Decaying intensity.
	t := c.ShakeTimer
	rr := NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * ShakeWorldIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}

// EffectivePos returns camera position with shake applied.
func (c *Camera) EffectivePos() (float64, float64) {
	return c.X + c.ShakeX, c.Y + c.ShakeY
}
