package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cocktail_rig/internal/logger"
	"cocktail_rig/internal/models"
	"cocktail_rig/internal/repository"
)

// LogFilter narrows the event history. Zero bounds are open and an empty
// Type matches every event.
type LogFilter struct {
	From time.Time
	To   time.Time
	Type string
}

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrUnknownEventType = errors.New("unknown event type")
)

var knownEventTypes = map[string]bool{
	models.EventPourStart:         true,
	models.EventPourDone:          true,
	models.EventIngredientPoured:  true,
	models.EventIngredientSkipped: true,
	models.EventPrime:             true,
	models.EventClean:             true,
	models.EventFault:             true,
	models.EventCalibration:       true,
	models.EventConfig:            true,
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeEventType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeAndValidateFilter prepares the repository query arguments.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	typ := normalizeEventType(f.Type)
	if typ != "" && !knownEventTypes[typ] {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: %q", ErrUnknownEventType, f.Type)
	}
	return from, to, typ, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.RigEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// recordEvent appends e even after ctx was canceled, so a stopped operation
// still leaves its trail. A failed write is logged and never fails the caller.
func recordEvent(ctx context.Context, events repository.EventRepo, log *logger.Logger, e models.RigEvent) {
	if events == nil {
		return
	}
	if err := events.Append(context.WithoutCancel(ctx), e); err != nil {
		log.Warnw("event_append_failed", "type", e.Type, "error", err)
	}
}
