package state

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Recorder captures a game's event stream for step-through playback and
// archival. It subscribes to the game's bus on creation; Stop detaches it.
type Recorder struct {
	mu     sync.RWMutex
	gameID string
	events []Event
	index  int

	bus   *Bus
	subID int
}

// NewRecorder starts recording the bus.
func NewRecorder(gameID string, bus *Bus) *Recorder {
	r := &Recorder{gameID: gameID, bus: bus}
	r.subID = bus.Subscribe(r.record)
	return r
}

func (r *Recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Stop detaches the recorder from the bus. Recorded events stay available.
func (r *Recorder) Stop() {
	if r.bus != nil {
		r.bus.Unsubscribe(r.subID)
		r.bus = nil
	}
}

func (r *Recorder) GameID() string { return r.gameID }

func (r *Recorder) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Start rewinds playback to the beginning.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = 0
}

// Next returns the next event in playback order.
func (r *Recorder) Next() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index >= len(r.events) {
		return Event{}, false
	}
	ev := r.events[r.index]
	r.index++
	return ev, true
}

// Previous steps playback back one event.
func (r *Recorder) Previous() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index == 0 {
		return Event{}, false
	}
	r.index--
	return r.events[r.index], true
}

type replayFile struct {
	GameID string  `json:"game_id"`
	Events []Event `json:"events"`
}

// Save writes the recording to <dir>/<gameID>.replay.gz.
func (r *Recorder) Save(dir string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create replay directory: %w", err)
	}
	path := filepath.Join(dir, r.gameID+".replay.gz")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(replayFile{GameID: r.gameID, Events: r.events}); err != nil {
		zw.Close()
		return fmt.Errorf("encode replay: %w", err)
	}
	return zw.Close()
}

// LoadReplay reads a saved recording. The returned recorder is detached
// and playback-only.
func LoadReplay(path string) (*Recorder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}
	defer zr.Close()

	var rf replayFile
	if err := json.NewDecoder(zr).Decode(&rf); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	return &Recorder{gameID: rf.GameID, events: rf.Events}, nil
}
