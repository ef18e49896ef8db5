package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"cocktail_rig/internal/models"
)

// Operations runs bar operations on a worker goroutine so callers can poll
// or stream progress instead of blocking for the whole sequence.
type Operations struct {
	bar    *BarService
	appCtx context.Context
	now    func() time.Time

	mu      sync.Mutex
	current models.Operation
	cancel  context.CancelFunc
	subs    map[chan models.Operation]struct{}

	wg sync.WaitGroup
}

// NewOperations binds workers to appCtx; canceling it cancels the running
// operation between steps.
func NewOperations(appCtx context.Context, bar *BarService) *Operations {
	o := &Operations{
		bar:     bar,
		appCtx:  appCtx,
		now:     func() time.Time { return time.Now().UTC() },
		current: models.Operation{State: models.StateIdle},
		subs:    make(map[chan models.Operation]struct{}),
	}
	bar.seq.Observe(o.stateChanged)
	return o
}

// StartPour validates p, reserves the rig and starts pouring.
func (o *Operations) StartPour(p PourParams) (models.Operation, error) {
	multiplier, err := parsePourMode(p.Mode)
	if err != nil {
		return models.Operation{}, err
	}
	op := models.Operation{Kind: models.OperationPour, Cocktail: p.Cocktail, Mode: servingName(multiplier)}
	return o.start(op, func(ctx context.Context, op *models.Operation) error {
		rep, err := o.bar.pour(ctx, p, multiplier)
		if rep.Cocktail != "" {
			op.Cocktail = rep.Cocktail
			op.Pour = &rep
		}
		if rep.Canceled {
			op.State = models.StateCanceled
		}
		return err
	})
}

func (o *Operations) StartPrime(seconds float64) (models.Operation, error) {
	return o.startMaintenance(models.OperationPrime, seconds, o.bar.opts.PrimeSeconds)
}

func (o *Operations) StartClean(seconds float64) (models.Operation, error) {
	return o.startMaintenance(models.OperationClean, seconds, o.bar.opts.CleanSeconds)
}

func (o *Operations) startMaintenance(kind string, seconds, def float64) (models.Operation, error) {
	seconds, err := o.bar.maintenanceSeconds(seconds, def)
	if err != nil {
		return models.Operation{}, err
	}
	return o.start(models.Operation{Kind: kind}, func(ctx context.Context, op *models.Operation) error {
		rep, err := o.bar.maintain(ctx, kind, seconds)
		op.Maintenance = &rep
		if rep.Canceled {
			op.State = models.StateCanceled
		}
		return err
	})
}

func (o *Operations) start(op models.Operation, run func(ctx context.Context, op *models.Operation) error) (models.Operation, error) {
	if err := o.bar.tryAcquire(); err != nil {
		return models.Operation{}, err
	}
	ctx, cancel := context.WithCancel(o.appCtx)

	op.ID = uuid.NewString()
	op.State = models.StatePreparing
	op.StartedAt = o.now()

	o.mu.Lock()
	o.current = op
	o.cancel = cancel
	o.mu.Unlock()
	o.publish(op)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		result := op
		err := run(ctx, &result)
		o.finish(result, err)
		cancel()
		o.bar.release()
	}()
	return op, nil
}

// finish records the terminal state before the guard is released, so a new
// operation can never be overwritten by an old one.
func (o *Operations) finish(result models.Operation, err error) {
	switch {
	case err != nil:
		result.State = models.StateFailed
		result.Error = err.Error()
	case result.State != models.StateCanceled:
		result.State = models.StateDone
	}
	result.FinishedAt = o.now()

	o.mu.Lock()
	o.current = result
	o.cancel = nil
	o.mu.Unlock()
	o.publish(result)
}

func (o *Operations) stateChanged(state string) {
	if state == models.StateIdle {
		return
	}
	o.mu.Lock()
	if !o.current.Running() || o.current.State == state {
		o.mu.Unlock()
		return
	}
	o.current.State = state
	snap := o.current
	o.mu.Unlock()
	o.publish(snap)
}

// Current returns the running operation, or the last finished one.
func (o *Operations) Current() models.Operation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// CancelCurrent asks the running operation to stop after its current step.
// It reports false when nothing is running.
func (o *Operations) CancelCurrent() (models.Operation, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel == nil || !o.current.Running() {
		return o.current, false
	}
	o.cancel()
	return o.current, true
}

// Subscribe returns a stream of operation snapshots. Slow readers miss
// intermediate snapshots, never the channel.
func (o *Operations) Subscribe() (<-chan models.Operation, func()) {
	ch := make(chan models.Operation, 8)
	o.mu.Lock()
	o.subs[ch] = struct{}{}
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, ch)
			o.mu.Unlock()
			close(ch)
		})
	}
}

func (o *Operations) publish(op models.Operation) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for ch := range o.subs {
		select {
		case ch <- op:
		default:
		}
	}
}

// Wait blocks until every started worker has returned.
func (o *Operations) Wait() { o.wg.Wait() }
