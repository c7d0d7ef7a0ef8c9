package ecs

import "github.com/milk9111/railgate/ecs/component"

// Children lists the entities rendered as part of a parent's hierarchy.
type Children struct {
	Entities []Entity
}

var ChildrenComponent = component.NewComponent[Children]()

// AttachChild appends child to parent's hierarchy.
func AttachChild(w *World, parent, child Entity) error {
	if !w.IsAlive(child) {
		return component.ErrEntityNotAlive
	}
	c, ok := Get(w, parent, ChildrenComponent)
	if !ok {
		return Add(w, parent, ChildrenComponent, &Children{Entities: []Entity{child}})
	}
	c.Entities = append(c.Entities, child)
	return nil
}

// WalkHierarchy visits root and then every live descendant depth first.
// Each entity is visited at most once even if the hierarchy has cycles.
func WalkHierarchy(w *World, root Entity, fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	seen := map[Entity]struct{}{}
	var walk func(Entity)
	walk = func(e Entity) {
		if _, ok := seen[e]; ok || !w.IsAlive(e) {
			return
		}
		seen[e] = struct{}{}
		fn(e)
		if c, ok := Get(w, e, ChildrenComponent); ok {
			for _, child := range c.Entities {
				walk(child)
			}
		}
	}
	walk(root)
}
