package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"cocktail_rig/internal/hardware"
	"cocktail_rig/internal/logger"
	"cocktail_rig/internal/metrics"
	"cocktail_rig/internal/models"
)

// Serving modes.
const (
	ModeSingle = "single"
	ModeDouble = "double"
)

var ErrInvalidMode = errors.New("invalid mode: must be single or double")

// ParseServing maps a serving mode to its multiplier.
func ParseServing(mode string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeSingle:
		return 1, nil
	case ModeDouble:
		return 2, nil
	default:
		return 0, ErrInvalidMode
	}
}

func servingName(multiplier int) string {
	if multiplier == 2 {
		return ModeDouble
	}
	return ModeSingle
}

// Clock abstracts time so pours can be tested without sleeping.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }

// Step is one timed motor run. Outcome indexes Plan.Outcomes.
type Step struct {
	Pump      int
	Direction hardware.Direction
	Seconds   float64
	Outcome   int
}

// Plan is the computed pour: one outcome per recipe ingredient, in recipe
// order, and one step per ingredient that needs the motor.
type Plan struct {
	Steps    []Step
	Outcomes []models.IngredientOutcome
}

// DefaultMaxStepSeconds bounds one ingredient's motor run.
const DefaultMaxStepSeconds = 300.0

// PlanLimits bounds what a plan may command.
type PlanLimits struct {
	PumpCount      int
	MaxStepSeconds float64
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// BuildPlan parses and resolves every ingredient. It never touches hardware.
func BuildPlan(cfg models.PumpConfig, ing *models.Ingredients, multiplier int, secondsPerOz float64, lim PlanLimits) Plan {
	var plan Plan
	if ing == nil {
		return plan
	}
	for p := ing.Oldest(); p != nil; p = p.Next() {
		m := ParseMeasurement(p.Value)
		o := models.IngredientOutcome{
			Ingredient:  p.Key,
			Measurement: p.Value,
			Unit:        m.Unit,
		}
		if m.Fallback {
			o.Warning = fmt.Sprintf("could not parse %q, using %.1f oz", p.Value, FallbackAmount)
		}

		o.Ounces = m.Amount * float64(multiplier)
		if !finite(o.Ounces) || o.Ounces < 0 || !finite(o.Ounces*secondsPerOz) {
			o.Outcome = models.OutcomeSkippedUnparseable
			o.Ounces = 0
			plan.Outcomes = append(plan.Outcomes, o)
			continue
		}

		pump, ok := ResolvePump(cfg, p.Key)
		if !ok {
			o.Outcome = models.OutcomeSkippedUnresolved
			plan.Outcomes = append(plan.Outcomes, o)
			continue
		}
		o.Pump = pump
		if pump < 1 || pump > lim.PumpCount {
			o.Outcome = models.OutcomeSkippedOutOfRange
			plan.Outcomes = append(plan.Outcomes, o)
			continue
		}
		if sec := o.Ounces * secondsPerOz; lim.MaxStepSeconds > 0 && sec > lim.MaxStepSeconds {
			o.Outcome = models.OutcomeSkippedTooLong
			o.Warning = fmt.Sprintf("%.1f s run exceeds the %.0f s step limit", sec, lim.MaxStepSeconds)
			plan.Outcomes = append(plan.Outcomes, o)
			continue
		}

		o.Outcome = models.OutcomePoured
		o.DurationSec = o.Ounces * secondsPerOz
		plan.Outcomes = append(plan.Outcomes, o)
		if o.DurationSec > 0 {
			plan.Steps = append(plan.Steps, Step{
				Pump:      pump,
				Direction: hardware.Forward,
				Seconds:   o.DurationSec,
				Outcome:   len(plan.Outcomes) - 1,
			})
		}
	}
	return plan
}

// Sequencer drives pumps one at a time. Every call holds a hardware session
// for its whole duration and releases it exactly once.
type Sequencer struct {
	registry *hardware.Registry
	clock    Clock
	log      *logger.Logger
	maxStep  float64

	mu       sync.Mutex
	state    string
	observer func(state string)
}

func NewSequencer(registry *hardware.Registry, clock Clock, log *logger.Logger) *Sequencer {
	if clock == nil {
		clock = RealClock()
	}
	return &Sequencer{
		registry: registry,
		clock:    clock,
		log:      logger.OrNop(log),
		maxStep:  DefaultMaxStepSeconds,
		state:    models.StateIdle,
	}
}

// SetMaxStepSeconds changes the longest run one ingredient may command.
// Non-positive values keep the current limit. Call before the first pour.
func (s *Sequencer) SetMaxStepSeconds(sec float64) {
	if sec > 0 && finite(sec) {
		s.maxStep = sec
	}
}

// Observe registers fn to be called on every state change.
func (s *Sequencer) Observe(fn func(state string)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

// State returns IDLE, PREPARING or CLEANUP.
func (s *Sequencer) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Sequencer) PumpCount() int { return s.registry.Len() }

func (s *Sequencer) setState(state string) {
	s.mu.Lock()
	s.state = state
	fn := s.observer
	s.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}

// begin enters PREPARING and opens the hardware session. A failed open has
// already released the hardware, so the state goes straight back to IDLE.
func (s *Sequencer) begin() (*hardware.Session, error) {
	s.setState(models.StatePreparing)
	sess, err := s.registry.Open()
	if err != nil {
		s.setState(models.StateCleanup)
		s.log.Errorw("hardware_open_failed", "error", err)
		s.setState(models.StateIdle)
		return nil, err
	}
	return sess, nil
}

func (s *Sequencer) end(sess *hardware.Session, err error) error {
	s.setState(models.StateCleanup)
	if rerr := sess.Release(); rerr != nil {
		s.log.Errorw("hardware_release_failed", "error", rerr)
		err = errors.Join(err, rerr)
	}
	s.setState(models.StateIdle)
	return err
}

// run drives one channel for the given time and stops it.
func (s *Sequencer) run(pump int, dir hardware.Direction, seconds float64) error {
	ch, err := s.registry.ChannelFor(pump)
	if err != nil {
		return err
	}
	d := secondsToDuration(seconds)
	s.log.Infow("pump_run", "pump", pump, "direction", dir.String(), "seconds", seconds)
	if err := ch.Drive(dir); err != nil {
		return err
	}
	s.clock.Sleep(d)
	if err := ch.Stop(); err != nil {
		return err
	}
	metrics.ObservePumpRun(dir.String(), d)
	return nil
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

// Pour executes the plan for cocktail. ctx is checked between steps only;
// steps not started after cancellation are reported CANCELED. A hardware
// fault marks that ingredient FAULTED, leaves later steps unstarted and is
// returned with the full outcome list.
func (s *Sequencer) Pour(ctx context.Context, cfg models.PumpConfig, cocktail models.Cocktail, multiplier int, secondsPerOz float64) (rep models.PourReport, err error) {
	plan := BuildPlan(cfg, cocktail.Ingredients, multiplier, secondsPerOz, PlanLimits{
		PumpCount:      s.registry.Len(),
		MaxStepSeconds: s.maxStep,
	})
	rep = models.PourReport{
		Cocktail:     cocktail.NormalName,
		Mode:         servingName(multiplier),
		Multiplier:   multiplier,
		SecondsPerOz: secondsPerOz,
		Outcomes:     make([]models.IngredientOutcome, 0, len(plan.Outcomes)),
	}

	sess, err := s.begin()
	if err != nil {
		return rep, err
	}
	defer func() { err = s.end(sess, err) }()

	var fault error
	next := 0
	for _, step := range plan.Steps {
		rep.Outcomes = append(rep.Outcomes, plan.Outcomes[next:step.Outcome]...)
		next = step.Outcome + 1

		o := plan.Outcomes[step.Outcome]
		if fault != nil || rep.Canceled || ctx.Err() != nil {
			if fault == nil {
				rep.Canceled = true
			}
			o.Outcome = models.OutcomeCanceled
			o.DurationSec = 0
			rep.Outcomes = append(rep.Outcomes, o)
			continue
		}
		if err := s.run(step.Pump, step.Direction, step.Seconds); err != nil {
			s.log.Errorw("pour_step_failed", "ingredient", o.Ingredient, "pump", step.Pump, "error", err)
			fault = err
			o.Outcome = models.OutcomeFaulted
			o.DurationSec = 0
			o.Warning = err.Error()
			rep.Outcomes = append(rep.Outcomes, o)
			continue
		}
		rep.TotalPouredSec += o.DurationSec
		rep.Outcomes = append(rep.Outcomes, o)
	}
	rep.Outcomes = append(rep.Outcomes, plan.Outcomes[next:]...)
	return rep, fault
}

// Prime runs every pump forward for seconds, in pump order.
func (s *Sequencer) Prime(ctx context.Context, seconds float64) (models.MaintenanceReport, error) {
	return s.maintain(ctx, models.OperationPrime, hardware.Forward, seconds)
}

// Clean runs every pump in reverse for seconds, in pump order.
func (s *Sequencer) Clean(ctx context.Context, seconds float64) (models.MaintenanceReport, error) {
	return s.maintain(ctx, models.OperationClean, hardware.Reverse, seconds)
}

func (s *Sequencer) maintain(ctx context.Context, kind string, dir hardware.Direction, seconds float64) (rep models.MaintenanceReport, err error) {
	rep = models.MaintenanceReport{Kind: kind, Runs: make([]models.PumpRun, 0, s.registry.Len())}

	sess, err := s.begin()
	if err != nil {
		return rep, err
	}
	defer func() { err = s.end(sess, err) }()

	for _, ch := range s.registry.Channels() {
		run := models.PumpRun{Pump: ch.Pump(), Direction: dir.String(), DurationSec: seconds}
		if rep.Canceled || ctx.Err() != nil {
			rep.Canceled = true
			rep.Runs = append(rep.Runs, run)
			continue
		}
		if err := s.run(ch.Pump(), dir, seconds); err != nil {
			rep.Runs = append(rep.Runs, run)
			return rep, err
		}
		run.Done = true
		rep.Runs = append(rep.Runs, run)
	}
	return rep, nil
}
