package service

import (
	"strings"

	"cocktail_rig/internal/models"
)

// ResolvePump finds the pump loaded with ingredient. Matching is exact after
// trimming and case folding; when several pumps carry the same ingredient the
// lowest pump number wins.
func ResolvePump(cfg models.PumpConfig, ingredient string) (int, bool) {
	want := strings.TrimSpace(ingredient)
	if want == "" {
		return 0, false
	}
	for _, pump := range cfg.Pumps() {
		if strings.EqualFold(strings.TrimSpace(cfg[pump]), want) {
			return pump, true
		}
	}
	return 0, false
}
