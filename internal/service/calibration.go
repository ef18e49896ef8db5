package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"cocktail_rig/internal/logger"
	"cocktail_rig/internal/models"
	"cocktail_rig/internal/repository"
)

const (
	// SettingCalibration is the settings key holding seconds per ounce.
	SettingCalibration = "one_oz_coefficient"
	// DefaultSecondsPerOunce applies when nothing valid is configured.
	DefaultSecondsPerOunce = 8.0
)

// InvalidCalibrationError rejects a non-positive or non-finite coefficient.
type InvalidCalibrationError struct {
	Value float64
}

func (e *InvalidCalibrationError) Error() string {
	return fmt.Sprintf("invalid calibration %v: seconds per ounce must be a finite number > 0", e.Value)
}

func validCalibration(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// CalibrationService stores the seconds-per-ounce coefficient. Every Get
// reads the persisted value; nothing is cached.
type CalibrationService struct {
	settings repository.SettingsRepo
	events   repository.EventRepo
	fallback float64
	log      *logger.Logger
}

// NewCalibrationService uses fallback when the store has no valid value. An
// invalid fallback is replaced by DefaultSecondsPerOunce.
func NewCalibrationService(settings repository.SettingsRepo, events repository.EventRepo, fallback float64, log *logger.Logger) *CalibrationService {
	if !validCalibration(fallback) {
		fallback = DefaultSecondsPerOunce
	}
	return &CalibrationService{settings: settings, events: events, fallback: fallback, log: logger.OrNop(log)}
}

// Get returns the stored coefficient, or the fallback when it is missing or
// invalid. Only a storage failure is an error.
func (s *CalibrationService) Get(ctx context.Context) (float64, error) {
	raw, ok, err := s.settings.Get(ctx, SettingCalibration)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !validCalibration(v) {
		s.log.Warnw("calibration_invalid_stored_value", "value", raw, "fallback", s.fallback)
		return s.fallback, nil
	}
	return v, nil
}

func (s *CalibrationService) Set(ctx context.Context, v float64) error {
	if !validCalibration(v) {
		return &InvalidCalibrationError{Value: v}
	}
	if err := s.settings.Set(ctx, SettingCalibration, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
		return err
	}
	s.log.Infow("calibration_set", "seconds_per_ounce", v)
	recordEvent(ctx, s.events, s.log, models.RigEvent{
		Type:        models.EventCalibration,
		Description: fmt.Sprintf("Calibration set to %g s/oz", v),
		Metadata:    map[string]any{"seconds_per_ounce": v},
	})
	return nil
}
