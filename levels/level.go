package levels

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/railgate/ecs/component"
)

//go:embed *.yaml
var LevelsFS embed.FS

// DefaultLevel is the embedded level used when no path is configured.
const DefaultLevel = "demo.yaml"

// GateRecord is the persisted form of a lap gate. The active flag is runtime
// only and is never written.
type GateRecord struct {
	MinProgress float32 `yaml:"min_progress"`
	MaxProgress float32 `yaml:"max_progress"`
}

func (r GateRecord) Config() component.LapGate {
	return component.LapGate{MinProgress: r.MinProgress, MaxProgress: r.MaxProgress}
}

func RecordOf(cfg component.LapGate) GateRecord {
	return GateRecord{MinProgress: cfg.MinProgress, MaxProgress: cfg.MaxProgress}
}

type Rail struct {
	LapLength float32 `yaml:"lap_length"`
	Speed     float32 `yaml:"speed"`
	Script    string  `yaml:"script,omitempty"`
}

// Piece is one authored entity. Children are rendered as part of the piece
// and share its gate.
type Piece struct {
	Name     string      `yaml:"name"`
	X        float64     `yaml:"x"`
	Y        float64     `yaml:"y"`
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
	Color    *YAMLColor  `yaml:"color,omitempty"`
	Layer    int         `yaml:"layer,omitempty"`
	Solid    bool        `yaml:"solid,omitempty"`
	Gate     *GateRecord `yaml:"gate,omitempty"`
	Children []Piece     `yaml:"children,omitempty"`
}

type Level struct {
	Name   string  `yaml:"name"`
	Rail   Rail    `yaml:"rail"`
	Pieces []Piece `yaml:"pieces"`
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	return &lvl, nil
}

// Read returns the raw level bytes from disk, falling back to the embedded
// level of the same base name when the file does not exist.
func Read(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err == nil {
		return data, nil
	}
	if embedded, embedErr := LevelsFS.ReadFile(path.Base(filepath.ToSlash(name))); embedErr == nil {
		return embedded, nil
	}
	return nil, fmt.Errorf("levels: read %s: %w", name, err)
}

func Load(name string) (*Level, error) {
	data, err := Read(name)
	if err != nil {
		return nil, err
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return lvl, nil
}

func Marshal(lvl *Level) ([]byte, error) {
	data, err := yaml.Marshal(lvl)
	if err != nil {
		return nil, fmt.Errorf("levels: marshal: %w", err)
	}
	return data, nil
}
