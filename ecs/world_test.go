package ecs

import (
	"testing"

	"github.com/milk9111/railgate/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if len(w.Entities()) != c.create-1 {
					t.Fatalf("expected %d live entities, got %d", c.create-1, len(w.Entities()))
				}
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %v and %v", old, fresh)
	}
	if w.IsAlive(old) {
		t.Fatalf("stale handle %v must not be alive", old)
	}
	if !w.IsAlive(fresh) {
		t.Fatalf("fresh handle %v must be alive", fresh)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if Has(w, e2, h1) {
					t.Fatalf("e2 should not have int component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2, stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2, stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2) || !Has(w, e2, h2) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := w.CreateEntity()

	if err := Add(w, e, h, nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e, component.ComponentHandle[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	w.DestroyEntity(e)
	if err := Add(w, e, h, intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestDestroyRemovesComponents(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := w.CreateEntity()
	if err := Add(w, e, h, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	w.DestroyEntity(e)

	reused := w.CreateEntity()
	if Has(w, reused, h) {
		t.Fatalf("reused id must not inherit components")
	}
	if _, ok := w.First(h); ok {
		t.Fatalf("expected empty storage after destroy")
	}
}

func TestForEachAndQuery(t *testing.T) {
	w := NewWorld()
	ha := component.NewComponent[int]()
	hb := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	for _, step := range []error{
		Add(w, e1, ha, intPtr(1)),
		Add(w, e3, ha, intPtr(3)),
		Add(w, e3, hb, stringPtr("x")),
		Add(w, e2, hb, stringPtr("y")),
	} {
		if step != nil {
			t.Fatal(step)
		}
	}

	var seen []Entity
	ForEach(w, ha, func(e Entity, _ *int) { seen = append(seen, e) })
	if len(seen) != 2 || seen[0] != e1 || seen[1] != e3 {
		t.Fatalf("expected [e1 e3] in insertion order, got %v", seen)
	}

	both := w.Query(ha, hb)
	if len(both) != 1 || both[0] != e3 {
		t.Fatalf("expected only e3, got %v", both)
	}

	if got := w.Query(ha, component.NewComponent[float64]()); len(got) != 0 {
		t.Fatalf("expected empty when other store missing, got %v", got)
	}

	first, v, ok := First(w, ha)
	if !ok || first != e1 || *v != 1 {
		t.Fatalf("expected e1=1, got %v=%v ok=%v", first, v, ok)
	}
}

func TestForEachAllowsRemoval(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		if err := Add(w, e, h, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, h, func(e Entity, _ *int) {
		visited++
		Remove(w, e, h)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if _, ok := w.First(h); ok {
		t.Fatalf("expected all components removed")
	}
}

func TestWalkHierarchy(t *testing.T) {
	w := NewWorld()
	root := w.CreateEntity()
	child := w.CreateEntity()
	grandchild := w.CreateEntity()
	dead := w.CreateEntity()

	for _, pair := range [][2]Entity{{root, child}, {child, grandchild}, {grandchild, root}, {root, dead}} {
		if err := AttachChild(w, pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	w.DestroyEntity(dead)

	var order []Entity
	WalkHierarchy(w, root, func(e Entity) { order = append(order, e) })
	if len(order) != 3 || order[0] != root || order[1] != child || order[2] != grandchild {
		t.Fatalf("unexpected walk order %v", order)
	}
}

func TestSchedulerOrder(t *testing.T) {
	var calls []string
	s := NewScheduler(
		SystemFunc(func(*World, float64) { calls = append(calls, "a") }),
		nil,
		SystemFunc(func(*World, float64) { calls = append(calls, "b") }),
	)
	s.Add(SystemFunc(func(_ *World, dt float64) {
		if dt != 0.5 {
			t.Fatalf("expected dt 0.5, got %v", dt)
		}
		calls = append(calls, "c")
	}))
	s.Update(NewWorld(), 0.5)

	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Fatalf("unexpected call order %v", calls)
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("expected 3 systems, got %d", len(s.Systems()))
	}
}
