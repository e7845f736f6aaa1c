package month

import (
	"testing"
	"time"
)

func TestAddMonths_TableTests(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "simple month add",
			start:  time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			name:   "january 31 clamps to february 29 in leap year",
			start:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "january 31 clamps to february 28 in common year",
			start:  time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "three month plan",
			start:  time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
			months: 3,
			want:   time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "year rollover",
			start:  time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "may 31 clamps to june 30",
			start:  time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "twelve months keeps day",
			start:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			months: 12,
			want:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.start, tt.months)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.start, tt.months, got, tt.want)
			}
		})
	}
}
