package services

import (
	"testing"
	"time"

	"cleanhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var lagos = time.FixedZone("WAT", 60*60)

func lekkiCleaner() *models.Cleaner {
	return &models.Cleaner{
		PreferredLocations: []string{"Lekki"},
		Services:           []string{string(models.DeepCleaning)},
		Availability:       []string{string(models.Weekdays)},
		AvailabilityTime:   []string{string(models.Morning)},
	}
}

func bookingAt(city, state string, at time.Time) models.Booking {
	return models.Booking{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		CleaningType:  models.DeepCleaning,
		CleaningTime:  at,
		Property: &models.Property{
			Address: &models.Address{City: city, State: state},
		},
	}
}

func TestMatchingService_Matches(t *testing.T) {
	service := NewMatchingService(lagos)
	tuesdayMorning := time.Date(2025, time.June, 10, 9, 0, 0, 0, lagos)
	saturdayMorning := time.Date(2025, time.June, 7, 9, 0, 0, 0, lagos)

	tests := []struct {
		name     string
		booking  models.Booking
		expected bool
	}{
		{"weekday morning in preferred city", bookingAt("Lekki", "Lagos", tuesdayMorning), true},
		{"city compared case-insensitively", bookingAt("  lekki ", "Lagos", tuesdayMorning), true},
		{"weekend excluded", bookingAt("Lekki", "Lagos", saturdayMorning), false},
		{"afternoon excluded", bookingAt("Lekki", "Lagos", tuesdayMorning.Add(5*time.Hour)), false},
		{"other city excluded", bookingAt("Ikeja", "Lagos", tuesdayMorning), false},
		{
			"UTC instant converted to business time",
			bookingAt("Lekki", "Lagos", time.Date(2025, time.June, 10, 10, 30, 0, 0, time.UTC)),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Matches(lekkiCleaner(), &tt.booking))
		})
	}
}

func TestMatchingService_Matches_StateMatches(t *testing.T) {
	service := NewMatchingService(lagos)
	cleaner := lekkiCleaner()
	cleaner.PreferredLocations = []string{"Lagos"}

	booking := bookingAt("Ikeja", "Lagos", time.Date(2025, time.June, 10, 9, 0, 0, 0, lagos))

	assert.True(t, service.Matches(cleaner, &booking))
}

func TestMatchingService_Matches_EmptyPreferencesMatchNothing(t *testing.T) {
	service := NewMatchingService(lagos)
	booking := bookingAt("Lekki", "Lagos", time.Date(2025, time.June, 10, 9, 0, 0, 0, lagos))

	assert.False(t, service.Matches(&models.Cleaner{}, &booking))

	noDays := lekkiCleaner()
	noDays.Availability = nil
	assert.False(t, service.Matches(noDays, &booking))
}

func TestMatchingService_Matches_MissingAddress(t *testing.T) {
	service := NewMatchingService(lagos)
	booking := models.Booking{CleaningTime: time.Date(2025, time.June, 10, 9, 0, 0, 0, lagos)}

	assert.False(t, service.Matches(lekkiCleaner(), &booking))
}

func TestMatchingService_Filter(t *testing.T) {
	service := NewMatchingService(lagos)
	tuesday := time.Date(2025, time.June, 10, 9, 0, 0, 0, lagos)

	first := bookingAt("Lekki", "Lagos", tuesday)
	ignored := bookingAt("Lekki", "Lagos", tuesday.Add(time.Hour))
	weekend := bookingAt("Lekki", "Lagos", time.Date(2025, time.June, 7, 9, 0, 0, 0, lagos))
	last := bookingAt("Lekki", "Lagos", tuesday.Add(2*time.Hour))

	result := service.Filter(
		lekkiCleaner(),
		[]models.Booking{first, ignored, weekend, last},
		[]uuid.UUID{ignored.ID},
	)

	if assert.Len(t, result, 2) {
		assert.Equal(t, first.ID, result[0].ID)
		assert.Equal(t, last.ID, result[1].ID)
	}
}

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		hour     int
		expected models.Period
	}{
		{0, models.Morning},
		{11, models.Morning},
		{12, models.Afternoon},
		{17, models.Afternoon},
		{18, models.Evening},
		{23, models.Evening},
	}

	for _, tt := range tests {
		at := time.Date(2025, time.June, 10, tt.hour, 59, 0, 0, time.UTC)
		assert.Equal(t, tt.expected, PeriodOf(at), "hour %d", tt.hour)
	}
}

func TestDayTypeOf(t *testing.T) {
	assert.Equal(t, models.Weekends, DayTypeOf(time.Date(2025, time.June, 7, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.Weekends, DayTypeOf(time.Date(2025, time.June, 8, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.Weekdays, DayTypeOf(time.Date(2025, time.June, 9, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.Weekdays, DayTypeOf(time.Date(2025, time.June, 13, 9, 0, 0, 0, time.UTC)))
}

func TestSortByDistance(t *testing.T) {
	a := models.NearbyBooking{Booking: models.Booking{Type: "a"}, Distance: 5000}
	b := models.NearbyBooking{Booking: models.Booking{Type: "b"}, Distance: UnknownDistance}
	c := models.NearbyBooking{Booking: models.Booking{Type: "c"}, Distance: 1200}
	d := models.NearbyBooking{Booking: models.Booking{Type: "d"}, Distance: 5000}

	bookings := []models.NearbyBooking{a, b, c, d}
	SortByDistance(bookings)

	order := make([]string, len(bookings))
	for i := range bookings {
		order[i] = bookings[i].Type
	}
	assert.Equal(t, []string{"c", "a", "d", "b"}, order)
}
