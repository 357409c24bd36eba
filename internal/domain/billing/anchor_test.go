package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBillingAnchor(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "beginning of month stays in same month",
			now:  time.Date(2026, time.March, 1, 9, 30, 0, 0, loc),
			want: time.Date(2026, time.March, 28, 0, 0, 0, 0, loc),
		},
		{
			name: "day before anchor stays in same month",
			now:  time.Date(2026, time.March, 27, 23, 59, 59, 0, loc),
			want: time.Date(2026, time.March, 28, 0, 0, 0, 0, loc),
		},
		{
			name: "anchor day rolls to next month",
			now:  time.Date(2026, time.March, 28, 0, 0, 1, 0, loc),
			want: time.Date(2026, time.April, 28, 0, 0, 0, 0, loc),
		},
		{
			name: "end of month rolls to next month",
			now:  time.Date(2026, time.January, 31, 12, 0, 0, 0, loc),
			want: time.Date(2026, time.February, 28, 0, 0, 0, 0, loc),
		},
		{
			name: "december rolls into january",
			now:  time.Date(2026, time.December, 30, 8, 0, 0, 0, loc),
			want: time.Date(2027, time.January, 28, 0, 0, 0, 0, loc),
		},
		{
			name: "february has a 28th",
			now:  time.Date(2026, time.February, 10, 0, 0, 0, 0, loc),
			want: time.Date(2026, time.February, 28, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextBillingAnchor(tt.now)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestNextBillingAnchorMidnight(t *testing.T) {
	got := NextBillingAnchor(time.Date(2026, time.May, 5, 17, 45, 12, 0, time.UTC))
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, 0, got.Second())
}
