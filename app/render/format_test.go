package render

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPLN(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00\u00a0zł"},
		{7.5, "7,50\u00a0zł"},
		{150, "150,00\u00a0zł"},
		{1234.56, "1234,56\u00a0zł"},
		{25356, "25\u00a0356,00\u00a0zł"},
		{31187.88, "31\u00a0187,88\u00a0zł"},
		{1234567.891, "1\u00a0234\u00a0567,89\u00a0zł"},
		{-42.1, "-42,10\u00a0zł"},
		{-0.001, "0,00\u00a0zł"},
		{math.NaN(), "0,00\u00a0zł"},
		{math.Inf(1), "0,00\u00a0zł"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPLN(tt.in), "amount %v", tt.in)
	}
}

func TestFormatRentalPeriod(t *testing.T) {
	assert.Equal(t, "1 dzień", FormatRentalPeriod(1))
	assert.Equal(t, "3 dni", FormatRentalPeriod(3))
	assert.Equal(t, "30 dni", FormatRentalPeriod(30))
}

func TestFormatDates(t *testing.T) {
	at := time.Date(2026, 10, 14, 7, 5, 9, 0, time.UTC)
	assert.Equal(t, "14 października 2026", FormatLongDate(at, time.UTC))
	assert.Equal(t, "14.10.2026", FormatShortDate(at, nil))
	assert.Equal(t, "14.10.2026, 07:05:09", FormatDateTime(at, time.UTC))
	assert.Equal(t, "1 stycznia 2027", FormatLongDate(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), time.UTC))
}

func TestFormatNumberAndPercent(t *testing.T) {
	assert.Equal(t, "35.3", formatNumber(35.3))
	assert.Equal(t, "8", formatNumber(8))
	assert.Equal(t, "0.00%", formatPercent(0))
	assert.Equal(t, "15.00%", formatPercent(15))
}
