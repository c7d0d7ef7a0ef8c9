package ecs

import "github.com/milk9111/railgate/ecs/component"

// Add attaches value to e, replacing any existing component of the same kind.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.storage(handle.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	return w.storage(handle.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	return w.storage(handle.ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	value, ok := w.storage(handle.ID(), false).Get(e).(*T)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// First returns the first entity with the component together with its value.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, *T, bool) {
	e, ok := w.First(handle)
	if !ok {
		return 0, nil, false
	}
	value, ok := Get(w, e, handle)
	if !ok {
		return 0, nil, false
	}
	return e, value, true
}

// ForEach visits every entity holding the component. The visit runs over a
// snapshot so fn may add or remove components.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	set := w.storage(handle.ID(), false)
	ents := append([]Entity(nil), set.Entities()...)
	for _, e := range ents {
		if value, ok := set.Get(e).(*T); ok {
			fn(e, value)
		}
	}
}
