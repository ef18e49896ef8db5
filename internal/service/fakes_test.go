package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cocktail_rig/internal/hardware"
	"cocktail_rig/internal/models"
	"cocktail_rig/internal/repository"
)

// fakeClock records requested sleeps without sleeping. onSleep, when set,
// runs inside Sleep while the motor is on.
type fakeClock struct {
	mu      sync.Mutex
	sleeps  []time.Duration
	onSleep func(n int, d time.Duration)
}

func (c *fakeClock) Now() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	n := len(c.sleeps)
	hook := c.onSleep
	c.mu.Unlock()
	if hook != nil {
		hook(n, d)
	}
}

func (c *fakeClock) seconds() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]float64, 0, len(c.sleeps))
	for _, d := range c.sleeps {
		out = append(out, d.Seconds())
	}
	return out
}

// gateClock blocks every Sleep until the test releases it.
type gateClock struct {
	started chan time.Duration
	release chan struct{}
}

func newGateClock() *gateClock {
	return &gateClock{started: make(chan time.Duration, 64), release: make(chan struct{}, 64)}
}

func (c *gateClock) Now() time.Time { return time.Now() }

func (c *gateClock) Sleep(d time.Duration) {
	c.started <- d
	<-c.release
}

func (c *gateClock) waitStarted(t *testing.T) time.Duration {
	t.Helper()
	select {
	case d := <-c.started:
		return d
	case <-time.After(2 * time.Second):
		t.Fatalf("no pump run started")
		return 0
	}
}

// testDriver wraps the simulated driver with fault injection.
type testDriver struct {
	*hardware.SimDriver
	failWritePin hardware.Pin
	failSetup    error
	pinWrites    []hardware.Pin
}

func newTestDriver() *testDriver {
	return &testDriver{SimDriver: hardware.NewSimDriver(nil), failWritePin: -1}
}

func (d *testDriver) Setup(pins []hardware.Pin) error {
	if d.failSetup != nil {
		return d.failSetup
	}
	return d.SimDriver.Setup(pins)
}

func (d *testDriver) Write(pin hardware.Pin, high bool) error {
	if pin == d.failWritePin && high {
		return errors.New("line stuck")
	}
	if high {
		d.pinWrites = append(d.pinWrites, pin)
	}
	return d.SimDriver.Write(pin, high)
}

func (d *testDriver) cleanups() int {
	_, _, c := d.Stats()
	return c
}

func (d *testDriver) setups() int {
	s, _, _ := d.Stats()
	return s
}

func newTestRegistry(t *testing.T, drv hardware.Driver) *hardware.Registry {
	t.Helper()
	reg, err := hardware.NewRegistry(drv, hardware.DefaultWiring)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

// memPumps is an in-memory repository.PumpRepo.
type memPumps struct {
	cfg     models.PumpConfig
	loadErr error
	loads   int
}

func (m *memPumps) Load(ctx context.Context) (models.PumpConfig, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := models.PumpConfig{}
	for k, v := range m.cfg {
		out[k] = v
	}
	return out, nil
}

func (m *memPumps) Save(ctx context.Context, cfg models.PumpConfig) error {
	m.cfg = cfg
	return nil
}

// memCocktails is an in-memory repository.CocktailRepo keyed by safe name.
type memCocktails struct {
	list   []models.Cocktail
	getErr error
}

func (m *memCocktails) List(ctx context.Context) ([]models.Cocktail, error) {
	return append([]models.Cocktail(nil), m.list...), nil
}

func (m *memCocktails) Get(ctx context.Context, safe string) (*models.Cocktail, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, c := range m.list {
		if c.SafeName() == safe {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memCocktails) ReplaceAll(ctx context.Context, cocktails []models.Cocktail) error {
	m.list = append([]models.Cocktail(nil), cocktails...)
	return nil
}

func (m *memCocktails) SaveIngredients(ctx context.Context, safe string, ing *models.Ingredients) (bool, error) {
	for i := range m.list {
		if m.list[i].SafeName() == safe {
			m.list[i].Ingredients = ing
			return true, nil
		}
	}
	return false, nil
}

// memSettings is an in-memory repository.SettingsRepo.
type memSettings struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

func newMemSettings() *memSettings { return &memSettings{values: map[string]string{}} }

func (m *memSettings) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memSettings) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// rig bundles a bar with its fakes.
type rig struct {
	driver    *testDriver
	clock     *fakeClock
	pumps     *memPumps
	cocktails *memCocktails
	settings  *memSettings
	events    *fakeEventRepo
	repos     *repository.Repository
	seq       *Sequencer
	bar       *BarService
}

func newRig(t *testing.T, clock Clock) *rig {
	t.Helper()
	r := &rig{
		driver: newTestDriver(),
		pumps:  &memPumps{cfg: models.PumpConfig{1: "vodka", 2: "lime juice", 3: "ginger beer"}},
		cocktails: &memCocktails{list: []models.Cocktail{
			{NormalName: "Moscow Mule", FunName: "Copper Kick", Ingredients: models.NewIngredients(
				"vodka", "2 oz",
				"lime juice", "1 oz",
			)},
			{NormalName: "Gin Gimlet", Ingredients: models.NewIngredients(
				"vodka", "2 oz",
				"gin", "1 oz",
			)},
		}},
		settings: newMemSettings(),
		events:   &fakeEventRepo{},
	}
	if clock == nil {
		r.clock = &fakeClock{}
		clock = r.clock
	}
	r.repos = &repository.Repository{
		Pumps:     r.pumps,
		Cocktails: r.cocktails,
		Settings:  r.settings,
		EventRepo: r.events,
	}
	r.seq = NewSequencer(newTestRegistry(t, r.driver), clock, nil)
	catalog := NewCatalogService(r.repos, r.seq.PumpCount(), nil)
	calibration := NewCalibrationService(r.settings, r.events, DefaultSecondsPerOunce, nil)
	r.bar = NewBarService(r.seq, catalog, calibration, r.events, BarOptions{}, nil)
	return r
}
