package game

// Board defaults (in cells). The board is always square; the tile count is
// supplied by the composition root and applied at (re)start.
const (
	DefaultTileCount = 20
	MinTileCount     = 8
	MaxTileCount     = 64
	StartLength      = 3
)

// Window defaults.
const (
	WindowWidth  = 840
	WindowHeight = 840
)

// Board rendering (in world units; one cell = one world unit).
const (
	BoardMargin    = 1.5  // empty world units around the board
	CellSpriteSize = 0.92 // snake/food sprite size relative to a cell
	FoodGlowSize   = 2.6
)

// Particles.
const (
	MaxParticles      = 4000
	MaxParticleRender = 6000
)

// Font atlas layout (rasterized at init: 32 cols x 4 rows, ASCII 0-127).
const (
	FontCellW  = 8
	FontCellH  = 16
	FontCols   = 32
	FontRows   = 4
	FontAtlasW = FontCellW * FontCols // 256
	FontAtlasH = FontCellH * FontRows // 64
)

// HUD banner lifetimes (seconds).
const (
	BannerTime     = 2.2
	BannerFadeTime = 1.0
)

// Camera shake presets.
const (
	ShakeTailCut        = 0.35
	ShakeTailCutTime    = 0.25
	ShakeDeath          = 0.8
	ShakeDeathTime      = 0.45
	ShakeNearMiss       = 0.15
	ShakeNearMissTime   = 0.12
	ShakeWorldIntensity = 0.6 // world units at full intensity
)
