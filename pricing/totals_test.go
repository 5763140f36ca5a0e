package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalsEngine(t *testing.T) {
	engine := NewTotalsEngine(0.23)

	tests := []struct {
		name      string
		lines     []float64
		wantNet   float64
		wantGross float64
	}{
		{"empty quote", nil, 0, 0},
		{"single line", []float64{25356}, 25356, 31187.88},
		{"rounding", []float64{0.1, 0.2}, 0.3, 0.37},
		{"many lines", []float64{100, 250.5, 1000.25}, 1350.75, 1661.42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Compute(tt.lines)
			assert.Equal(t, tt.wantNet, got.Net)
			assert.Equal(t, tt.wantGross, got.Gross)
		})
	}
}

func TestTotalsEngineConfigurableRate(t *testing.T) {
	got := NewTotalsEngine(0.08).Compute([]float64{100})
	assert.Equal(t, 108.0, got.Gross)
	assert.Equal(t, 0.08, NewTotalsEngine(0.08).VATRate())
}
