package state

import "sync"

// Event kinds published on the bus.
const (
	EventActionStarted = "ACTION_STARTED"
	EventActionEnded   = "ACTION_ENDED"
	EventDamage        = "DAMAGE"
	EventDraw          = "DRAW"
	EventDiscard       = "DISCARD"
	EventFatigue       = "FATIGUE"
	EventDeath         = "DEATH"
	EventTurnStart     = "TURN_START"
	EventTurnEnd       = "TURN_END"
	EventSummon        = "SUMMON"
	EventPlay          = "PLAY"
	EventGameOver      = "GAME_OVER"
)

// Event is one observable state change. Fields are populated per kind;
// unused fields stay zero.
type Event struct {
	Kind   string `json:"kind"`
	Turn   int    `json:"turn"`
	Player string `json:"player,omitempty"`
	Entity string `json:"entity,omitempty"`
	Action string `json:"action,omitempty"`
	Amount int    `json:"amount,omitempty"`
}

// Handler receives published events.
type Handler func(Event)

// Bus fans events out to subscribers. Publishing happens on the game
// goroutine; subscriptions may come from transport goroutines, so the
// subscriber map is guarded.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its subscription ID.
func (b *Bus) Subscribe(h Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[b.nextID] = h
	return b.nextID
}

func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.subs {
		h(ev)
	}
}
