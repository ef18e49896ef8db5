package service

import "testing"

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		in   string
		want Measurement
	}{
		{"2 oz", Measurement{Amount: 2, Unit: "oz"}},
		{"1.5 oz", Measurement{Amount: 1.5, Unit: "oz"}},
		{"  0.75   fl   oz ", Measurement{Amount: 0.75, Unit: "fl oz"}},
		{"3", Measurement{Amount: 3}},
		{"-1 oz", Measurement{Amount: -1, Unit: "oz"}},
		{"two oz", Measurement{Amount: FallbackAmount, Unit: "two oz", Fallback: true}},
		{"1/2 oz", Measurement{Amount: FallbackAmount, Unit: "1/2 oz", Fallback: true}},
		{"", Measurement{Amount: FallbackAmount, Unit: "", Fallback: true}},
		{"   ", Measurement{Amount: FallbackAmount, Unit: "   ", Fallback: true}},
	}
	for _, tt := range tests {
		if got := ParseMeasurement(tt.in); got != tt.want {
			t.Errorf("ParseMeasurement(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
