package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDates(t *testing.T) {
	req := require.New(t)
	// 07:00 UTC is 09:00 in Amsterdam during summer time
	start := time.Date(2025, 8, 15, 7, 0, 0, 0, time.UTC)

	req.Equal("15 augustus 2025", Date(start))
	req.Equal("15 aug 2025", DateShort(start))
	req.Equal("09:00", Time(start))
	req.Equal("15 augustus 2025 om 09:00", DateTime(start))
	req.Equal("1 maart 2025", Date(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))
	req.Equal("1 jan 2025", DateShort(time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC)))
}

func TestDateRange(t *testing.T) {
	req := require.New(t)
	start := time.Date(2025, 8, 15, 7, 0, 0, 0, time.UTC)

	req.Equal("15 augustus 2025 van 09:00 tot 17:00", DateRange(start, start.Add(8*time.Hour)))

	conference := time.Date(2025, 10, 15, 7, 0, 0, 0, time.UTC)
	req.Equal("15 oktober 2025 09:00 - 16 oktober 2025 17:00",
		DateRange(conference, conference.Add(32*time.Hour)))
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"free", 0, "EUR", "Gratis"},
		{"euro", 399, "EUR", "€ 399,00"},
		{"thousands", 1299.5, "eur", "€ 1.299,50"},
		{"default currency", 12.3, "", "€ 12,30"},
		{"dollar", 49, "USD", "US$ 49,00"},
		{"unknown code", 10, "XYZ", "XYZ 10,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Price(tt.amount, tt.currency))
		})
	}
}
