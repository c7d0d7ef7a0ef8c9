package ecs

import "github.com/milk9111/railgate/ecs/component"

// World owns entities and their component storage.
type World struct {
	entities   entityStore
	components map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{components: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id. It returns
// false if e was not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, set := range w.components {
		set.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity ordered by id.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

// Query returns the entities that have every listed component, in the dense
// order of the first kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.components[k.ID()]
		if set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}

	out := make([]Entity, 0, sets[0].Len())
	for _, e := range sets[0].Entities() {
		match := true
		for _, other := range sets[1:] {
			if !other.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity holding the component kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	set := w.components[kind.ID()]
	if set.Len() == 0 {
		return 0, false
	}
	return set.Entities()[0], true
}

func (w *World) storage(id component.ComponentID, create bool) *SparseSet {
	if w.components == nil {
		w.components = make(map[component.ComponentID]*SparseSet)
	}
	set := w.components[id]
	if set == nil && create {
		set = &SparseSet{}
		w.components[id] = set
	}
	return set
}
