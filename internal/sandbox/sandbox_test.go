package sandbox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/core"
	"github.com/vovakirdan/hamster-habitat/internal/habitat"
	"github.com/vovakirdan/hamster-habitat/internal/registry"
	"github.com/vovakirdan/hamster-habitat/internal/telemetry"
)

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestSandbox(t *testing.T, seed int64, opts ...Option) *Sandbox {
	t.Helper()
	s, err := New(config.DefaultConfig(), opts...)
	require.NoError(t, err)
	s.Reset(runtimeConfig(seed))
	return s
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func run(s *Sandbox, ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step(core.NewInputFrame())
	}
}

type sliceRecorder struct {
	samples []telemetry.Sample
	err     error
}

func (r *sliceRecorder) Record(s telemetry.Sample) error {
	r.samples = append(r.samples, s)
	return r.err
}

func TestNewRejectsEmptyHabitat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Creatures = nil
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrNoCreatures)
}

func TestNewRejectsInvalidLayout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout.Rooms = nil
	_, err := New(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, habitat.ErrInvalidLayout)
}

func TestNewSpawnsConfiguredCreatures(t *testing.T) {
	s := newTestSandbox(t, 1)

	require.Len(t, s.Creatures(), 3)
	assert.Equal(t, "Nibbles", s.Creatures()[0].Name())
	assert.Equal(t, core.GameState{Tick: 0, Creatures: 3, Paused: false}, s.State())
	assert.Equal(t, "habitat", s.ID())
}

func TestSameSeedReplaysIdentically(t *testing.T) {
	a := newTestSandbox(t, 7)
	b := newTestSandbox(t, 7)

	for i := 0; i < 1200; i++ {
		a.Step(core.NewInputFrame())
		b.Step(core.NewInputFrame())
	}

	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.Equal(t, uint64(1200), a.State().Tick)
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := newTestSandbox(t, 1)
	b := newTestSandbox(t, 2)
	run(a, 600)
	run(b, 600)

	assert.NotEqual(t, a.Snapshot().Creatures, b.Snapshot().Creatures)
}

func TestLongRunKeepsInvariants(t *testing.T) {
	s := newTestSandbox(t, 99)

	for i := 0; i < 60*120; i++ {
		s.Step(core.NewInputFrame())
		snap := s.Snapshot()
		require.GreaterOrEqual(t, snap.FoodLevel, 0.0)
		require.LessOrEqual(t, snap.FoodLevel, 100.0)
		require.GreaterOrEqual(t, snap.WaterLevel, 0.0)
		require.LessOrEqual(t, snap.WaterLevel, 100.0)
		for _, c := range snap.Creatures {
			for _, v := range []float64{c.Hunger, c.Thirst, c.Tiredness, c.Happiness} {
				require.GreaterOrEqual(t, v, 0.0, c.Name)
				require.LessOrEqual(t, v, 100.0, c.Name)
			}
			_, ok := s.Layout().Room(c.Room)
			require.True(t, ok, "creature %s in unknown room %q", c.Name, c.Room)
		}
	}
}

func TestFeedAndFillActions(t *testing.T) {
	s := newTestSandbox(t, 1)
	bowl, _ := s.Environment().Food()
	bottle, _ := s.Environment().Water()
	bowl.SetLevel(50)
	bottle.SetLevel(10)

	res := s.Step(frame(core.ActionFeed, core.ActionFill))

	assert.InDelta(t, 80.0, bowl.Level(), 1e-9)
	assert.InDelta(t, 50.0, bottle.Level(), 1e-9)
	assert.Equal(t, []string{"Food added!", "Water filled!"}, res.Events)
	assert.Equal(t, "Water filled!", s.Feedback())
}

func TestFeedbackExpires(t *testing.T) {
	s := newTestSandbox(t, 1)
	s.Step(frame(core.ActionFeed))
	require.NotEmpty(t, s.Feedback())

	run(s, 60)
	assert.Empty(t, s.Feedback())
}

func TestPetAllClampsHappiness(t *testing.T) {
	s := newTestSandbox(t, 1)

	res := s.Step(frame(core.ActionPet))

	assert.Equal(t, []string{"Pet!"}, res.Events)
	for _, c := range s.Creatures() {
		assert.LessOrEqual(t, c.Happiness(), 100.0)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newTestSandbox(t, 3)
	run(s, 10)
	before := s.Snapshot()

	res := s.Step(frame(core.ActionPause))
	assert.True(t, res.State.Paused)
	run(s, 30)

	after := s.Snapshot()
	assert.Equal(t, before.Creatures, after.Creatures)
	assert.Equal(t, before.Tick, after.Tick)

	// Actions still apply while paused.
	bowl, _ := s.Environment().Food()
	bowl.SetLevel(0)
	s.Step(frame(core.ActionFeed))
	assert.InDelta(t, 30.0, bowl.Level(), 1e-9)

	s.Step(frame(core.ActionPause))
	assert.False(t, s.State().Paused)
	assert.Equal(t, before.Tick+1, s.State().Tick)
}

func TestResetActionRestoresStart(t *testing.T) {
	fresh := newTestSandbox(t, 5)
	start := fresh.Snapshot()

	s := newTestSandbox(t, 5)
	run(s, 900)
	bowl, _ := s.Environment().Food()
	bowl.SetLevel(3)

	s.Step(frame(core.ActionPause))
	res := s.Step(frame(core.ActionReset))

	assert.Equal(t, []string{"Habitat reset"}, res.Events)
	snap := s.Snapshot()
	assert.Equal(t, start.Creatures, snap.Creatures)
	assert.Equal(t, uint64(0), snap.Tick)
	assert.Equal(t, 100.0, snap.FoodLevel)
}

func TestClickHitsBowlBottleAndCreatures(t *testing.T) {
	s := newTestSandbox(t, 1)
	s.Step(frame(core.ActionPause))

	bowl, _ := s.Environment().Food()
	bottle, _ := s.Environment().Water()
	bowl.SetLevel(0)
	bottle.SetLevel(0)

	x, y := s.view.toCell(bowl.Position())
	require.True(t, s.Click(x, y))
	assert.InDelta(t, 30.0, bowl.Level(), 1e-9)

	x, y = s.view.toCell(bottle.Position())
	require.True(t, s.Click(x, y))
	assert.InDelta(t, 40.0, bottle.Level(), 1e-9)

	x, y = s.view.toCell(s.Creatures()[0].Position())
	require.True(t, s.Click(x, y))
	assert.Equal(t, "Pet!", s.Feedback())

	// HUD rows are outside the canvas.
	assert.False(t, s.Click(0, 0))
}

func TestClicksArriveThroughStep(t *testing.T) {
	s := newTestSandbox(t, 1)
	bowl, _ := s.Environment().Food()
	bowl.SetLevel(20)

	in := core.NewInputFrame()
	x, y := s.view.toCell(bowl.Position())
	in.AddClick(x, y)
	in.AddClick(0, 0)
	res := s.Step(in)

	assert.InDelta(t, 50.0, bowl.Level(), 1e-9)
	assert.Equal(t, []string{"Food added!"}, res.Events)
}

func TestRecorderReceivesSamples(t *testing.T) {
	rec := &sliceRecorder{}
	s := newTestSandbox(t, 1, WithRecorder(rec))

	s.Step(frame(core.ActionFeed))
	run(s, 4)

	require.Len(t, rec.samples, 5)
	assert.Equal(t, uint64(1), rec.samples[0].Tick)
	assert.Equal(t, []string{"feed"}, rec.samples[0].Actions)
	assert.Empty(t, rec.samples[1].Actions)
	assert.Len(t, rec.samples[4].Creatures, 3)
	assert.InDelta(t, 5.0/60, rec.samples[4].SimTimeSec, 1e-9)
}

func TestPausedActionsReachNextSample(t *testing.T) {
	rec := &sliceRecorder{}
	s := newTestSandbox(t, 1, WithRecorder(rec))

	s.Step(frame(core.ActionPause))
	s.Step(frame(core.ActionPet))
	s.Step(frame(core.ActionPause))

	require.Len(t, rec.samples, 1)
	assert.Equal(t, []string{"pet"}, rec.samples[0].Actions)
}

func TestRecorderErrorDisablesTelemetry(t *testing.T) {
	rec := &sliceRecorder{err: errors.New("disk full")}
	s := newTestSandbox(t, 1, WithRecorder(rec))

	run(s, 3)

	assert.Len(t, rec.samples, 1)
	assert.EqualError(t, s.RecordErr(), "disk full")
}

func TestCollectorIntegration(t *testing.T) {
	c := telemetry.NewCollector(60, nil)
	s := newTestSandbox(t, 11, WithRecorder(c))

	run(s, 600)

	require.Len(t, c.Windows(), 10)
	w := c.Windows()[9]
	assert.Equal(t, 3, w.Creatures)
	var share float64
	for _, st := range habitat.States {
		share += w.StateShare(st)
	}
	assert.InDelta(t, 1.0, share, 1e-9)
}

func TestActionsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := newTestSandbox(t, 1, WithLogger(logger))

	s.Step(frame(core.ActionFeed, core.ActionPause))

	out := buf.String()
	assert.Contains(t, out, "feed")
	assert.Contains(t, out, "pause toggled")
}

func TestRender(t *testing.T) {
	s := newTestSandbox(t, 1)
	run(s, 5)

	screen := core.NewScreen(80, 24)
	s.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Hamster Habitat")
	assert.Contains(t, out, "Food 100%")
	assert.Contains(t, out, "Nibbles")
	assert.Contains(t, out, "Hunger")
	assert.Contains(t, out, "main")
	assert.Contains(t, screen.Row(0), "Water")
}

func TestRenderPausedAndFeedback(t *testing.T) {
	s := newTestSandbox(t, 1)
	s.Step(frame(core.ActionPause, core.ActionFill))

	screen := core.NewScreen(80, 24)
	s.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "PAUSED")
	assert.Contains(t, out, "Press SPACE to resume")
	assert.Contains(t, screen.Row(23), "Water filled!")
}

func TestRenderChineseLabels(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Language = "zh"
	s, err := New(cfg)
	require.NoError(t, err)
	s.Reset(runtimeConfig(1))

	screen := core.NewScreen(100, 30)
	s.Render(screen)

	assert.Contains(t, screen.String(), "饥饿")
	assert.Contains(t, screen.String(), "快乐")
}

func TestRenderSmallScreenDropsNeedRows(t *testing.T) {
	s := newTestSandbox(t, 1)
	screen := core.NewScreen(60, 10)
	s.Render(screen)

	assert.Equal(t, 1, s.view.area.Y)
	assert.NotContains(t, screen.String(), "Hunger")
}

func TestRenderTinyScreen(t *testing.T) {
	s := newTestSandbox(t, 1)
	screen := core.NewScreen(20, 1)
	s.Render(screen)
	assert.Contains(t, screen.String(), "small")
}

func TestBar(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "░░░░░░"},
		{50, "███░░░"},
		{100, "██████"},
		{150, "██████"},
		{-5, "░░░░░░"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bar(tt.value, 6), "value %g", tt.value)
	}
}

func TestFillCells(t *testing.T) {
	assert.Equal(t, 0, fillCells(0, 100, 10))
	assert.Equal(t, 1, fillCells(0.5, 100, 10))
	assert.Equal(t, 5, fillCells(50, 100, 10))
	assert.Equal(t, 10, fillCells(100, 100, 10))
	assert.Equal(t, 0, fillCells(50, 0, 10))
}

func TestScenarios(t *testing.T) {
	ids := make([]string, 0)
	for _, info := range registry.List() {
		ids = append(ids, info.ID)
	}
	assert.Equal(t, []string{"habitat", "lazy", "solo"}, ids)

	cfg := config.DefaultConfig()
	require.NoError(t, registry.Apply("", &cfg))
	assert.Len(t, cfg.Creatures, 3)

	require.NoError(t, registry.Apply("solo", &cfg))
	require.Len(t, cfg.Creatures, 1)
	assert.Equal(t, "Nibbles", cfg.Creatures[0].Name)

	rate := cfg.Creature.EnergyRate
	require.NoError(t, registry.Apply("lazy", &cfg))
	assert.InDelta(t, 3*rate, cfg.Creature.EnergyRate, 1e-12)

	empty := config.DefaultConfig()
	empty.Creatures = nil
	assert.ErrorIs(t, registry.Apply("solo", &empty), ErrNoCreatures)

	assert.Error(t, registry.Apply("zoo", &cfg))
}
