package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"cocktail_rig/internal/models"
)

func TestBar_PourLoadsFreshConfig(t *testing.T) {
	r := newRig(t, nil)
	ctx := context.Background()

	rep, err := r.bar.Pour(ctx, PourParams{Cocktail: "Moscow Mule", Mode: "single"})
	if err != nil {
		t.Fatalf("Pour: %v", err)
	}
	if got := r.clock.seconds(); !reflect.DeepEqual(got, []float64{16, 8}) {
		t.Fatalf("run times = %v", got)
	}

	// reassign lime juice and recalibrate between pours
	r.pumps.cfg = models.PumpConfig{1: "vodka", 5: "lime juice"}
	r.settings.values[SettingCalibration] = "4"
	r.clock.sleeps = nil

	rep, err = r.bar.Pour(ctx, PourParams{Cocktail: "moscow_mule"})
	if err != nil {
		t.Fatalf("Pour: %v", err)
	}
	if rep.Outcomes[1].Pump != 5 || rep.SecondsPerOz != 4 {
		t.Fatalf("stale config used: %+v", rep)
	}
	if got := r.clock.seconds(); !reflect.DeepEqual(got, []float64{8, 4}) {
		t.Fatalf("run times = %v", got)
	}
	if r.pumps.loads != 2 {
		t.Fatalf("pump config loaded %d times", r.pumps.loads)
	}
}

func TestBar_PourRecordsEvents(t *testing.T) {
	r := newRig(t, nil)
	if _, err := r.bar.Pour(context.Background(), PourParams{Cocktail: "Gin Gimlet", Mode: "double"}); err != nil {
		t.Fatalf("Pour: %v", err)
	}
	want := []string{
		models.EventPourStart,
		models.EventIngredientPoured,
		models.EventIngredientSkipped,
		models.EventPourDone,
	}
	if got := r.events.types(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestBar_EventFailureDoesNotFailPour(t *testing.T) {
	r := newRig(t, nil)
	r.events.failAppend = errors.New("disk full")
	if _, err := r.bar.Pour(context.Background(), PourParams{Cocktail: "Moscow Mule"}); err != nil {
		t.Fatalf("Pour: %v", err)
	}
}

func TestBar_ConfigurationLoadErrorTouchesNoPump(t *testing.T) {
	tests := []struct {
		name     string
		breakRig func(r *rig)
		what     string
	}{
		{"pump config", func(r *rig) { r.pumps.loadErr = errors.New("corrupt") }, "pump configuration"},
		{"recipe", func(r *rig) { r.cocktails.getErr = errors.New("corrupt") }, "recipe"},
		{"calibration", func(r *rig) { r.settings.getErr = errors.New("corrupt") }, "calibration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, nil)
			tt.breakRig(r)

			_, err := r.bar.Pour(context.Background(), PourParams{Cocktail: "Moscow Mule"})
			var cle *ConfigurationLoadError
			if !errors.As(err, &cle) || cle.What != tt.what {
				t.Fatalf("want ConfigurationLoadError(%s), got %v", tt.what, err)
			}
			if r.driver.setups() != 0 || len(r.clock.seconds()) != 0 {
				t.Fatalf("hardware touched after load failure")
			}
		})
	}
}

func TestBar_PourCallerErrors(t *testing.T) {
	r := newRig(t, nil)
	ctx := context.Background()

	if _, err := r.bar.Pour(ctx, PourParams{Cocktail: "Moscow Mule", Mode: "triple"}); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("want ErrInvalidMode, got %v", err)
	}
	if _, err := r.bar.Pour(ctx, PourParams{Cocktail: "Negroni"}); !errors.Is(err, ErrCocktailNotFound) {
		t.Fatalf("want ErrCocktailNotFound, got %v", err)
	}
	if _, err := r.bar.Pour(ctx, PourParams{}); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("want ErrNothingSelected, got %v", err)
	}
}

func TestBar_PourSelectionWithOverride(t *testing.T) {
	r := newRig(t, nil)
	r.settings.values[SettingSelection] = "moscow_mule"

	rep, err := r.bar.Pour(context.Background(), PourParams{
		Ingredients: models.NewIngredients("lime juice", "0.5 oz", "vodka", "1 oz"),
	})
	if err != nil {
		t.Fatalf("Pour: %v", err)
	}
	if rep.Cocktail != "Moscow Mule" || rep.Outcomes[0].Ingredient != "lime juice" {
		t.Fatalf("override not used: %+v", rep)
	}
	if got := r.clock.seconds(); !reflect.DeepEqual(got, []float64{4, 8}) {
		t.Fatalf("run times = %v", got)
	}
	// the stored recipe is unchanged
	if v, _ := r.cocktails.list[0].Ingredients.Get("vodka"); v != "2 oz" {
		t.Fatalf("stored recipe mutated: %q", v)
	}
}

func TestBar_BusyRejectsSecondOperation(t *testing.T) {
	r := newRig(t, nil)
	if err := r.bar.tryAcquire(); err != nil {
		t.Fatalf("tryAcquire: %v", err)
	}
	ctx := context.Background()
	if _, err := r.bar.Pour(ctx, PourParams{Cocktail: "Moscow Mule"}); !errors.Is(err, ErrBusy) {
		t.Fatalf("Pour: want ErrBusy, got %v", err)
	}
	if _, err := r.bar.Prime(ctx, 0); !errors.Is(err, ErrBusy) {
		t.Fatalf("Prime: want ErrBusy, got %v", err)
	}
	r.bar.release()
	if _, err := r.bar.Clean(ctx, 1); err != nil {
		t.Fatalf("Clean after release: %v", err)
	}
}

func TestBar_MaintenanceDurations(t *testing.T) {
	r := newRig(t, nil)
	ctx := context.Background()

	for _, bad := range []float64{-1, 121} {
		if _, err := r.bar.Prime(ctx, bad); !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("Prime(%v): want ErrInvalidDuration, got %v", bad, err)
		}
	}

	if _, err := r.bar.Prime(ctx, 0); err != nil {
		t.Fatalf("Prime: %v", err)
	}
	if _, err := r.bar.Clean(ctx, 0); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	got := r.clock.seconds()
	if len(got) != 24 || got[0] != DefaultPrimeSeconds || got[23] != DefaultCleanSeconds {
		t.Fatalf("run times = %v", got)
	}
	if r.driver.cleanups() != 2 {
		t.Fatalf("cleanups = %d", r.driver.cleanups())
	}
	want := []string{models.EventPrime, models.EventClean}
	if types := r.events.types(); !reflect.DeepEqual(types, want) {
		t.Fatalf("events = %v", types)
	}
}

func TestBar_HardwareFaultIsLogged(t *testing.T) {
	r := newRig(t, nil)
	r.driver.failWritePin = 17

	_, err := r.bar.Prime(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected fault")
	}
	if types := r.events.types(); len(types) != 1 || types[0] != models.EventFault {
		t.Fatalf("events = %v", types)
	}
	if r.driver.cleanups() != 1 {
		t.Fatalf("cleanups = %d", r.driver.cleanups())
	}
}
