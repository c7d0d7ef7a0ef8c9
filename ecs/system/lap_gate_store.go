package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/component"
)

var ErrDuplicateGate = errors.New("lap gate: entity already registered")

type lapGateEntry struct {
	entity ecs.Entity
	config component.LapGate
	state  component.LapGateState
}

// LapGateStore holds the gated entities in registration order. Entries are
// never reordered; Prune keeps the relative order of the survivors.
type LapGateStore struct {
	entries []*lapGateEntry
	index   map[ecs.Entity]*lapGateEntry
}

func NewLapGateStore() *LapGateStore {
	return &LapGateStore{index: make(map[ecs.Entity]*lapGateEntry)}
}

// Add registers e as inactive. Registering the same entity twice is a
// configuration error.
func (s *LapGateStore) Add(e ecs.Entity, cfg component.LapGate) error {
	if !e.Valid() {
		return fmt.Errorf("lap gate: add %v: %w", e, component.ErrEntityNotAlive)
	}
	if s.index == nil {
		s.index = make(map[ecs.Entity]*lapGateEntry)
	}
	if _, ok := s.index[e]; ok {
		return fmt.Errorf("lap gate: add %v: %w", e, ErrDuplicateGate)
	}
	entry := &lapGateEntry{entity: e, config: cfg}
	s.entries = append(s.entries, entry)
	s.index[e] = entry
	return nil
}

func (s *LapGateStore) Get(e ecs.Entity) (component.LapGate, bool) {
	entry, ok := s.index[e]
	if !ok {
		return component.LapGate{}, false
	}
	return entry.config, true
}

func (s *LapGateStore) State(e ecs.Entity) (component.LapGateState, bool) {
	entry, ok := s.index[e]
	if !ok {
		return component.LapGateState{}, false
	}
	return entry.state, true
}

// ExportConfig returns the record to serialize for e. ok is false when e has
// no gate, which is not an error.
func (s *LapGateStore) ExportConfig(e ecs.Entity) (component.LapGate, bool) {
	return s.Get(e)
}

func (s *LapGateStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entities returns the registered entities in registration order.
func (s *LapGateStore) Entities() []ecs.Entity {
	if s == nil {
		return nil
	}
	out := make([]ecs.Entity, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry.entity)
	}
	return out
}

// Prune drops entries whose entity no longer exists and returns how many
// were removed.
func (s *LapGateStore) Prune(alive func(ecs.Entity) bool) int {
	if s == nil || alive == nil {
		return 0
	}
	kept := s.entries[:0]
	for _, entry := range s.entries {
		if alive(entry.entity) {
			kept = append(kept, entry)
			continue
		}
		delete(s.index, entry.entity)
	}
	removed := len(s.entries) - len(kept)
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept
	return removed
}

func (s *LapGateStore) each(fn func(*lapGateEntry)) {
	if s == nil {
		return
	}
	for _, entry := range s.entries {
		fn(entry)
	}
}
