package game

import "math"

type ParticleKind uint8

const (
	ParticleBurst ParticleKind = iota
	ParticleGlow
	ParticleSparkle
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64

	Life    float64
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

// ParticleSystem is a fixed-cap pool; when full, new particles overwrite
// the oldest slots round-robin.
type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *Rand
	ovrIdx int
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: NewRand(seed | 1),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// SpawnBurst scatters count particles from a cell centre.
func (ps *ParticleSystem) SpawnBurst(x, y float64, col RGB, count int) {
	for i := 0; i < count; i++ {
		ang := ps.rng.RangeF(0, 2*math.Pi)
		speed := ps.rng.RangeF(1.0, 4.0)
		ps.Add(Particle{
			X: x, Y: y,
			VX:      math.Cos(ang) * speed,
			VY:      math.Sin(ang) * speed,
			Size:    ps.rng.RangeF(0.08, 0.22),
			Life:    0,
			MaxLife: ps.rng.RangeF(0.3, 0.8),
			Col:     col,
			Kind:    ParticleBurst,
		})
	}
}

// SpawnGlowBurst adds a short additive flash at a cell centre.
func (ps *ParticleSystem) SpawnGlowBurst(x, y float64, col RGB, count int) {
	for i := 0; i < count; i++ {
		ang := ps.rng.RangeF(0, 2*math.Pi)
		speed := ps.rng.RangeF(0.4, 1.6)
		ps.Add(Particle{
			X: x, Y: y,
			VX:      math.Cos(ang) * speed,
			VY:      math.Sin(ang) * speed,
			Size:    ps.rng.RangeF(0.4, 1.1),
			Life:    0,
			MaxLife: ps.rng.RangeF(0.25, 0.5),
			Col:     col,
			Kind:    ParticleGlow,
		})
	}
}

// SpawnSparkle trails tiny glints behind a luck escape.
func (ps *ParticleSystem) SpawnSparkle(x, y float64, col RGB, count int) {
	for i := 0; i < count; i++ {
		ps.Add(Particle{
			X:       x + ps.rng.RangeF(-0.4, 0.4),
			Y:       y + ps.rng.RangeF(-0.4, 0.4),
			VX:      ps.rng.RangeF(-0.5, 0.5),
			VY:      ps.rng.RangeF(-1.2, -0.3),
			Size:    ps.rng.RangeF(0.05, 0.14),
			Life:    -ps.rng.RangeF(0, 0.15), // staggered start
			MaxLife: ps.rng.RangeF(0.4, 0.9),
			Col:     col,
			Kind:    ParticleSparkle,
		})
	}
}

func (ps *ParticleSystem) Update(dt float64) {
	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.Life += dt
		if p.Life >= p.MaxLife {
			// Swap-delete keeps the pool dense.
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}
		if p.Life >= 0 {
			p.X += p.VX * dt
			p.Y += p.VY * dt
			p.VX *= 1 - 2.2*dt
			p.VY *= 1 - 2.2*dt
		}
		i++
	}
}

// RenderData splits particles into glow (additive) and normal (alpha
// blend) buffers. Format: [x, y, size, r, g, b, a, rotation] * N.
func (ps *ParticleSystem) RenderData(glowBuf, normBuf []float32) ([]float32, []float32) {
	glowBuf = glowBuf[:0]
	normBuf = normBuf[:0]

	for _, p := range ps.P {
		if p.Life < 0 {
			continue
		}
		t := p.Life / p.MaxLife
		a := 1.0 - t
		if a <= 0 {
			continue
		}

		rc := float32(p.Col.R) / 255.0
		gc := float32(p.Col.G) / 255.0
		bc := float32(p.Col.B) / 255.0
		ac := float32(a)

		switch p.Kind {
		case ParticleGlow, ParticleSparkle:
			// Additive: pre-multiply color by alpha.
			rc *= ac
			gc *= ac
			bc *= ac
			glowBuf = append(glowBuf,
				float32(p.X), float32(p.Y), float32(p.Size), rc, gc, bc, ac, 0)
		default:
			normBuf = append(normBuf,
				float32(p.X), float32(p.Y), float32(p.Size), rc, gc, bc, ac, 0)
		}
	}
	return glowBuf, normBuf
}
