package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{500000, "500.000"},
		{1234567.6, "1.234.568"},
		{-25000, "-25.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in))
	}
	assert.Equal(t, "500.000 ₫", FormatVND(500000))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.March, 5, 10, 30, 0, 0, time.Local)
	assert.Equal(t, "5/3/2026", FormatDate(d))
	assert.Equal(t, "10:30 5/3/2026", FormatDateTime(d))
	assert.Empty(t, FormatDate(time.Time{}))
}

func TestFormatScore(t *testing.T) {
	v := 8.5
	whole := 9.0
	assert.Equal(t, "-", FormatScore(nil))
	assert.Equal(t, "8.5", FormatScore(&v))
	assert.Equal(t, "9", FormatScore(&whole))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "Hóa", TruncateWithEllipsis("Hóa", 5))
	assert.Equal(t, "Hóa…", TruncateWithEllipsis("Hóa học", 4))
	assert.Equal(t, "…", TruncateWithEllipsis("Hóa học", 1))
}
