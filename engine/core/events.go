package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload any
}

type EventType uint16

const (
	EvtCreatureSpawned EventType = iota
	EvtCreatureKilled
	EvtCreatureRemoved
	EvtAttackStarted
	// EvtAttackHit and EvtAttackMiss are emitted once per resolved batch
	EvtAttackHit
	EvtAttackMiss
	EvtWaveStarted
	EvtLevelSkipped
	EvtGameWon
	EvtGameLost
)

// KillPayload accompanies EvtCreatureKilled
type KillPayload struct {
	ID      EntityID
	Species Species
	Pos     Vec2
}

// AttackPayload accompanies EvtAttackStarted
type AttackPayload struct {
	ID   EntityID
	Kind AttackKind
}

// BatchPayload accompanies EvtAttackHit and EvtAttackMiss
type BatchPayload struct {
	Attacks int
	Kills   int
}

// WavePayload accompanies EvtWaveStarted
type WavePayload struct {
	Wave      int
	Level     int
	Creatures int
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the queued events without dispatching them
func (eb *EventBus) Pending() []Event { return eb.queue }

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}
