package game

import "time"

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseTransition // death feedback plays; restart not yet allowed
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseTransition:
		return "transition"
	case PhaseGameOver:
		return "game-over"
	}
	return "phase(?)"
}

// GameSession owns the phase machine, the score and the player toggles.
// Legal transitions: notStarted -> running <-> paused,
// running -> transition -> gameOver -> running (via Start).
type GameSession struct {
	Phase        Phase
	Score        int
	HighScore    int
	LuckEnabled  bool
	ShakeEnabled bool

	PeakLen   int
	PlayTime  time.Duration
	NewHigh   bool // this run set a new high score (decided once, in Die)
	transLeft time.Duration

	bus *EventBus
}

func NewGameSession(bus *EventBus) *GameSession {
	return &GameSession{
		Phase:        PhaseNotStarted,
		LuckEnabled:  true,
		ShakeEnabled: true,
		bus:          bus,
	}
}

func (s *GameSession) setPhase(p Phase) {
	if s.Phase == p {
		return
	}
	s.Phase = p
	if s.bus != nil {
		s.bus.Emit(Event{Type: EventPhaseChanged, Data: int(p)})
	}
}

// Start begins a new run. Legal only from notStarted and gameOver.
func (s *GameSession) Start() bool {
	if s.Phase != PhaseNotStarted && s.Phase != PhaseGameOver {
		return false
	}
	s.Score = 0
	s.PeakLen = 0
	s.PlayTime = 0
	s.NewHigh = false
	s.transLeft = 0
	s.setPhase(PhaseRunning)
	return true
}

// TogglePause flips running <-> paused; ignored in any other phase.
func (s *GameSession) TogglePause() bool {
	switch s.Phase {
	case PhaseRunning:
		s.setPhase(PhasePaused)
		return true
	case PhasePaused:
		s.setPhase(PhaseRunning)
		return true
	}
	return false
}

// Die routes through transition so the death feedback can play before the
// game-over screen. The high score comparison happens here, exactly once
// per run.
func (s *GameSession) Die(tn *Tuning) bool {
	if s.Phase != PhaseRunning {
		return false
	}
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		s.NewHigh = true
		if s.bus != nil {
			s.bus.Emit(Event{Type: EventNewHighScore, Data: s.Score})
		}
	}
	s.transLeft = tn.Transition()
	s.setPhase(PhaseTransition)
	if s.bus != nil {
		s.bus.Emit(Event{Type: EventDeath})
	}
	return true
}

// Update counts down the transition delay. Returns true on the frame the
// session settles into gameOver; the caller persists the run then.
func (s *GameSession) Update(dt time.Duration) bool {
	if s.Phase == PhaseRunning {
		s.PlayTime += dt
	}
	if s.Phase != PhaseTransition {
		return false
	}
	s.transLeft -= dt
	if s.transLeft > 0 {
		return false
	}
	s.transLeft = 0
	s.setPhase(PhaseGameOver)
	return true
}
