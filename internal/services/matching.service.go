package services

import (
	"math"
	"slices"
	"strings"
	"time"

	"cleanhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// DayTypeOf classifies t in its own location.
func DayTypeOf(t time.Time) models.DayType {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return models.Weekends
	}
	return models.Weekdays
}

// PeriodOf maps an hour to Morning (<12), Afternoon (12-17) or Evening (>=18).
func PeriodOf(t time.Time) models.Period {
	switch hour := t.Hour(); {
	case hour < 12:
		return models.Morning
	case hour < 18:
		return models.Afternoon
	}
	return models.Evening
}

// MatchingService decides which pending bookings a cleaner should see. It holds
// no state beyond the business timezone.
type MatchingService struct {
	location *time.Location
	log      logger.Logger
}

func NewMatchingService(location *time.Location) *MatchingService {
	if location == nil {
		location = time.UTC
	}
	return &MatchingService{location: location, log: logger.New("matchingService")}
}

func containsFold(values []string, target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	return slices.ContainsFunc(values, func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), target)
	})
}

// Matches reports whether one booking passes the cleaner's location, day and
// period preferences. An empty preference list matches nothing.
func (s *MatchingService) Matches(cleaner *models.Cleaner, booking *models.Booking) bool {
	log := s.log.Function("Matches")

	var city, state string
	if booking.Property != nil && booking.Property.Address != nil {
		city = booking.Property.Address.City
		state = booking.Property.Address.State
	}

	if !containsFold(cleaner.PreferredLocations, city) && !containsFold(cleaner.PreferredLocations, state) {
		log.Debug("location mismatch", "bookingID", booking.ID, "city", city, "state", state)
		return false
	}

	local := booking.CleaningTime.In(s.location)

	dayType := DayTypeOf(local)
	if !containsFold(cleaner.Availability, string(dayType)) {
		log.Debug("day type mismatch", "bookingID", booking.ID, "dayType", dayType)
		return false
	}

	period := PeriodOf(local)
	if !containsFold(cleaner.AvailabilityTime, string(period)) {
		log.Debug("period mismatch", "bookingID", booking.ID, "period", period)
		return false
	}

	return true
}

// Filter keeps the bookings that match and that the cleaner has not ignored,
// preserving input order.
func (s *MatchingService) Filter(
	cleaner *models.Cleaner,
	bookings []models.Booking,
	ignored []uuid.UUID,
) []models.Booking {
	ignoredSet := make(map[uuid.UUID]struct{}, len(ignored))
	for _, id := range ignored {
		ignoredSet[id] = struct{}{}
	}

	matched := make([]models.Booking, 0, len(bookings))
	for i := range bookings {
		if _, skip := ignoredSet[bookings[i].ID]; skip {
			continue
		}
		if s.Matches(cleaner, &bookings[i]) {
			matched = append(matched, bookings[i])
		}
	}

	return matched
}

// SortByDistance orders bookings nearest first; unknown distances (math.MaxInt)
// sort last and ties keep their relative order.
func SortByDistance(bookings []models.NearbyBooking) {
	slices.SortStableFunc(bookings, func(a, b models.NearbyBooking) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
}

const UnknownDistance = math.MaxInt
