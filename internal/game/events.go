package game

type EventType int

const (
	EventFoodEaten EventType = iota
	EventFoodExpired
	EventFoodSpawned
	EventNearMiss
	EventTailCut
	EventDeath
	EventNewHighScore
	EventPhaseChanged
)

type Event struct {
	Type EventType
	Cell Cell
	Data int // Generic payload (food kind, removed segments, new phase).
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
