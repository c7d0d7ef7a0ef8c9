package levels

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/component"
	"github.com/milk9111/railgate/ecs/system"
)

func TestLoadEmbeddedDemo(t *testing.T) {
	lvl, err := Load(DefaultLevel)
	require.NoError(t, err)

	assert.Equal(t, "demo", lvl.Name)
	assert.Equal(t, float32(600), lvl.Rail.LapLength)
	assert.NotEmpty(t, lvl.Rail.Script)

	gated := 0
	for _, p := range lvl.Pieces {
		if p.Gate != nil {
			gated++
		}
	}
	assert.Equal(t, 4, gated)

	_, err = system.CompileSpeedScript([]byte(lvl.Rail.Script))
	assert.NoError(t, err, "demo speed script compiles")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{`"#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}},
		{`"#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var yc YAMLColor
			require.NoError(t, unmarshalString(c.in, &yc))
			assert.Equal(t, c.want, yc.Color)

			out, err := marshalString(yc)
			require.NoError(t, err)
			var back YAMLColor
			require.NoError(t, unmarshalString(out, &back))
			assert.Equal(t, c.want, back.Color)
		})
	}

	var bad YAMLColor
	assert.Error(t, unmarshalString(`"#fff"`, &bad))
	assert.Error(t, unmarshalString(`[1, 2]`, &bad))
}

const roundTripLevel = `
name: roundtrip
rail:
  lap_length: 10
  speed: 1
pieces:
  - name: plain
    width: 4
    height: 4
  - name: tenth
    width: 4
    height: 4
    solid: true
    gate:
      min_progress: 0.1
      max_progress: 0.30000001
  - name: odd
    width: 4
    height: 4
    gate:
      min_progress: 123456.79
      max_progress: 1.0e-45
    children:
      - name: odd_child
        width: 1
        height: 1
`

func TestBuildExportRoundTrip(t *testing.T) {
	lvl, err := Parse([]byte(roundTripLevel))
	require.NoError(t, err)

	w := ecs.NewWorld()
	gates := system.NewLapGateSystem()
	named, err := Build(w, lvl, gates)
	require.NoError(t, err)
	require.Len(t, named, 4)
	assert.Equal(t, 2, gates.Store().Len())

	_, ok := gates.ExportConfig(named["plain"])
	assert.False(t, ok, "ungated piece exports no data")

	data, err := Marshal(Export(lvl, named, gates))
	require.NoError(t, err)

	reloaded, err := Parse(data)
	require.NoError(t, err)
	w2 := ecs.NewWorld()
	gates2 := system.NewLapGateSystem()
	named2, err := Build(w2, reloaded, gates2)
	require.NoError(t, err)

	for _, name := range []string{"tenth", "odd"} {
		a, ok := gates.ExportConfig(named[name])
		require.True(t, ok)
		b, ok := gates2.ExportConfig(named2[name])
		require.True(t, ok)
		assert.Equal(t, math.Float32bits(a.MinProgress), math.Float32bits(b.MinProgress), name)
		assert.Equal(t, math.Float32bits(a.MaxProgress), math.Float32bits(b.MaxProgress), name)
	}
	assert.Nil(t, reloaded.Pieces[0].Gate)
}

func TestBuildGatedPiecesStartInactive(t *testing.T) {
	lvl, err := Parse([]byte(roundTripLevel))
	require.NoError(t, err)

	w := ecs.NewWorld()
	named, err := Build(w, lvl, system.NewLapGateSystem())
	require.NoError(t, err)

	for name, hidden := range map[string]bool{"plain": false, "tenth": true, "odd": true, "odd_child": true} {
		s, ok := ecs.Get(w, named[name], component.SpriteComponent)
		require.True(t, ok, name)
		assert.Equal(t, hidden, s.Hidden, name)
	}

	body, ok := ecs.Get(w, named["tenth"], component.PhysicsBodyComponent)
	require.True(t, ok)
	assert.True(t, body.Disabled)
	assert.False(t, ecs.Has(w, named["plain"], component.PhysicsBodyComponent))

	children, ok := ecs.Get(w, named["odd"], ecs.ChildrenComponent)
	require.True(t, ok)
	assert.Equal(t, []ecs.Entity{named["odd_child"]}, children.Entities)

	progress, ok := system.CarrierProgress(w)
	assert.True(t, ok)
	assert.Zero(t, progress)
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"duplicate_name", `
pieces:
  - name: a
  - name: a
`},
		{"child_gate", `
pieces:
  - name: a
    gate: {min_progress: 0, max_progress: 1}
    children:
      - name: b
        gate: {min_progress: 0, max_progress: 1}
`},
		{"unnamed_gate", `
pieces:
  - gate: {min_progress: 0, max_progress: 1}
`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl, err := Parse([]byte(c.doc))
			require.NoError(t, err)
			_, err = Build(ecs.NewWorld(), lvl, system.NewLapGateSystem())
			assert.Error(t, err)
		})
	}

	lvl, err := Parse([]byte("pieces:\n  - name: a\n  - name: a\n"))
	require.NoError(t, err)
	_, err = Build(ecs.NewWorld(), lvl, nil)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestSpawnPieceFailureKeepsNameFree(t *testing.T) {
	w := ecs.NewWorld()
	named := map[string]ecs.Entity{}

	dead := w.CreateEntity()
	w.DestroyEntity(dead)
	err := spawnPiece(w, dead, Piece{Name: "wall", Solid: true}, true, true, named)
	require.ErrorIs(t, err, component.ErrEntityNotAlive)
	assert.NotContains(t, named, "wall")

	e := w.CreateEntity()
	require.NoError(t, spawnPiece(w, e, Piece{Name: "wall", Solid: true}, true, true, named))
	assert.Equal(t, e, named["wall"])

	dup := w.CreateEntity()
	require.ErrorIs(t, spawnPiece(w, dup, Piece{Name: "wall"}, false, false, named), ErrDuplicateName)
	assert.Equal(t, e, named["wall"])
	assert.False(t, w.IsAlive(dup), "rejected pieces leave no entity behind")
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("pieces: [1, 2"))
	assert.Error(t, err)
}
