package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/railgate/config"
	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/component"
	"github.com/milk9111/railgate/ecs/system"
	"github.com/milk9111/railgate/levels"
)

var background = color.NRGBA{R: 0x1b, G: 0x1b, B: 0x24, A: 0xff}

type Game struct {
	settings config.Settings
	log      *zap.Logger
	editKey  ebiten.Key

	world     *ecs.World
	scheduler *ecs.Scheduler
	gates     *system.LapGateSystem
	render    *system.RenderSystem
	edit      *system.EditModeSystem
	watcher   *levels.Watcher

	// reloadPending holds a level change seen during edit mode until the
	// editor exits.
	reloadPending bool

	hud ebtext.Face
}

func NewGame(settings config.Settings, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		settings: settings,
		log:      logger,
		hud:      ebtext.NewGoXFace(basicfont.Face7x13),
	}

	if settings.Editor.Enabled {
		if err := g.editKey.UnmarshalText([]byte(settings.Editor.Key)); err != nil {
			return nil, fmt.Errorf("editor key %q: %w", settings.Editor.Key, err)
		}
	}

	if err := g.load(); err != nil {
		return nil, err
	}

	if settings.Watch {
		w, err := levels.NewWatcher(settings.Level)
		if err != nil {
			logger.Warn("level watch disabled", zap.String("level", settings.Level), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load rebuilds the world from the level file. On error the current world
// is kept.
func (g *Game) load() error {
	lvl, err := levels.Load(g.settings.Level)
	if err != nil {
		return err
	}

	var script *system.SpeedScript
	if lvl.Rail.Script != "" {
		script, err = system.CompileSpeedScript([]byte(lvl.Rail.Script))
		if err != nil {
			return err
		}
	}

	world := ecs.NewWorld()
	render := system.NewRenderSystem(world)
	physics := system.NewPhysicsSystem(g.log)
	gates := system.NewLapGateSystem(
		system.WithVisibility(render),
		system.WithPhysics(physics),
		system.WithLogger(g.log),
	)

	var edit *system.EditModeSystem
	if g.settings.Editor.Enabled {
		edit = system.NewEditModeSystem(g.editKey, g.log)
		gates.Init(edit)
	} else {
		gates.Init(nil)
	}

	named, err := levels.Build(world, lvl, gates)
	if err != nil {
		return err
	}

	g.world = world
	g.render = render
	g.gates = gates
	g.edit = edit
	g.scheduler = ecs.NewScheduler(
		system.NewRailSystem(script, g.log),
		gates,
		physics,
	)
	g.log.Info("level loaded",
		zap.String("level", g.settings.Level),
		zap.Int("pieces", len(named)),
		zap.Int("gates", gates.Store().Len()))
	return nil
}

func (g *Game) Update() error {
	g.drainWatcher()

	if g.edit != nil {
		g.edit.Update(g.world, 0)
		if g.edit.Active() {
			return nil
		}
	}
	g.reloadIfPending()

	g.scheduler.Update(g.world, 1/float64(ebiten.TPS()))
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.levelChanged(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("level watch error", zap.Error(err))
			}
		default:
			return
		}
	}
}

// levelChanged reloads the level, or defers the reload while edit mode is
// active so the editor keeps its world.
func (g *Game) levelChanged(path string) {
	g.reloadPending = true
	if g.edit.Active() {
		g.log.Info("level changed in edit mode, reloading on exit", zap.String("level", path))
		return
	}
	g.reloadIfPending()
}

func (g *Game) reloadIfPending() {
	if !g.reloadPending {
		return
	}
	g.reloadPending = false
	if err := g.load(); err != nil {
		g.log.Error("level reload failed, keeping current level", zap.String("level", g.settings.Level), zap.Error(err))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.render.Draw(screen)

	progress, _ := system.CarrierProgress(g.world)
	lap := 0
	if _, rider, ok := ecs.First(g.world, component.RailRiderComponent); ok {
		lap = rider.Lap
	}
	active := 0
	for _, e := range g.gates.Store().Entities() {
		if g.gates.Active(e) {
			active++
		}
	}

	msg := fmt.Sprintf("lap %d  progress %.2f  gates %d/%d", lap, progress, active, g.gates.Store().Len())
	if g.edit.Active() {
		msg += "  [EDIT]"
	}
	if g.settings.Debug {
		msg += fmt.Sprintf("  fps %.1f", ebiten.ActualFPS())
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, msg, g.hud, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.Window.Width, g.settings.Window.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
