package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const pumpLabelPrefix = "Pump"

// PumpConfig maps pump number to the ingredient loaded on it. Pumps without
// an entry are unassigned. The wire form is the flat {"Pump 1":"vodka"} record.
type PumpConfig map[int]string

// PumpLabel formats a pump number as "Pump N".
func PumpLabel(pump int) string {
	return pumpLabelPrefix + " " + strconv.Itoa(pump)
}

// ParsePumpLabel parses "Pump N" (case-insensitive, spaces optional).
func ParsePumpLabel(label string) (int, error) {
	s := strings.TrimSpace(label)
	if len(s) < len(pumpLabelPrefix) || !strings.EqualFold(s[:len(pumpLabelPrefix)], pumpLabelPrefix) {
		return 0, fmt.Errorf("invalid pump label %q", label)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[len(pumpLabelPrefix):]))
	if err != nil {
		return 0, fmt.Errorf("invalid pump label %q", label)
	}
	return n, nil
}

// NewPumpConfig validates a raw label->ingredient record against a registry of
// pumpCount pumps. Blank ingredients are dropped as unassigned.
func NewPumpConfig(raw map[string]string, pumpCount int) (PumpConfig, error) {
	cfg := make(PumpConfig, len(raw))
	seen := make(map[int]bool, len(raw))
	for label, ingredient := range raw {
		n, err := ParsePumpLabel(label)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > pumpCount {
			return nil, fmt.Errorf("pump label %q outside [1, %d]", label, pumpCount)
		}
		if seen[n] {
			return nil, fmt.Errorf("pump %d configured twice", n)
		}
		seen[n] = true
		ingredient = strings.TrimSpace(ingredient)
		if ingredient == "" {
			continue
		}
		cfg[n] = ingredient
	}
	return cfg, nil
}

// Pumps returns assigned pump numbers in ascending order.
func (c PumpConfig) Pumps() []int {
	out := make([]int, 0, len(c))
	for n, ing := range c {
		if strings.TrimSpace(ing) != "" {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// Labels returns the flat wire record.
func (c PumpConfig) Labels() map[string]string {
	out := make(map[string]string, len(c))
	for _, n := range c.Pumps() {
		out[PumpLabel(n)] = c[n]
	}
	return out
}

func (c PumpConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Labels())
}

// UnmarshalJSON accepts the flat record without a registry bound; callers
// validate pump range with NewPumpConfig.
func (c *PumpConfig) UnmarshalJSON(b []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	cfg, err := NewPumpConfig(raw, int(^uint(0)>>1))
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}
