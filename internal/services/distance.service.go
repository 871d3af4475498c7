package services

import (
	"context"
	"strconv"
	"time"

	"cleanhub/config"
	"cleanhub/internal/database"
	"cleanhub/internal/models"
	"cleanhub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"googlemaps.github.io/maps"
)

const (
	DISTANCE_CACHE_PREFIX = "distance"
	DISTANCE_CACHE_EXPIRY = 24 * time.Hour

	// Distance matrix limit for a single origin.
	MAX_DESTINATIONS_PER_REQUEST = 25
)

// DistanceProvider returns driving distances in meters from origin to each
// destination, index aligned. A nil entry means no route was found.
type DistanceProvider interface {
	Distances(ctx context.Context, origin string, destinations []string) ([]*int, error)
}

type googleDistanceProvider struct {
	client *maps.Client
}

func NewGoogleDistanceProvider(apiKey string) (DistanceProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &googleDistanceProvider{client: client}, nil
}

func (p *googleDistanceProvider) Distances(
	ctx context.Context,
	origin string,
	destinations []string,
) ([]*int, error) {
	response, err := p.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: destinations,
	})
	if err != nil {
		return nil, err
	}

	distances := make([]*int, len(destinations))
	if len(response.Rows) == 0 {
		return distances, nil
	}

	for i, element := range response.Rows[0].Elements {
		if i >= len(distances) || element == nil || element.Status != "OK" {
			continue
		}
		meters := element.Distance.Meters
		distances[i] = &meters
	}

	return distances, nil
}

// DistanceService annotates bookings with travel distance, caching answers per
// origin/destination pair. Provider failures leave distances unknown.
type DistanceService struct {
	provider DistanceProvider
	cache    database.CacheClient
	timeout  time.Duration
	log      logger.Logger
}

func NewDistanceService(config config.Config, cache database.CacheClient) *DistanceService {
	log := logger.New("distanceService")

	var provider DistanceProvider
	if config.GoogleMapsAPIKey == "" {
		log.Function("NewDistanceService").Warn("GOOGLE_MAPS_API_KEY not set, distances will be unknown")
	} else {
		p, err := NewGoogleDistanceProvider(config.GoogleMapsAPIKey)
		if err != nil {
			log.Function("NewDistanceService").Er("failed to create maps client", err)
		} else {
			provider = p
		}
	}

	return newDistanceService(provider, cache, time.Duration(config.DistanceTimeoutSeconds)*time.Second)
}

func newDistanceService(provider DistanceProvider, cache database.CacheClient, timeout time.Duration) *DistanceService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DistanceService{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		log:      logger.New("distanceService"),
	}
}

func distanceCacheKey(origin, destination string) string {
	return utils.HashKey(origin, destination)
}

func (s *DistanceService) cached(ctx context.Context, origin, destination string) (int, bool) {
	if s.cache == nil {
		return 0, false
	}

	var meters int
	found, err := database.NewCacheBuilder(s.cache, distanceCacheKey(origin, destination)).
		WithContext(ctx).
		WithHash(DISTANCE_CACHE_PREFIX).
		Get(&meters)
	if err != nil {
		s.log.Function("cached").Debug("distance cache read failed", "error", err)
		return 0, false
	}

	return meters, found
}

func (s *DistanceService) store(ctx context.Context, origin, destination string, meters int) {
	if s.cache == nil {
		return
	}

	err := database.NewCacheBuilder(s.cache, distanceCacheKey(origin, destination)).
		WithContext(ctx).
		WithHash(DISTANCE_CACHE_PREFIX).
		WithValue(strconv.Itoa(meters)).
		WithTTL(DISTANCE_CACHE_EXPIRY).
		Set()
	if err != nil {
		s.log.Function("store").Debug("distance cache write failed", "error", err)
	}
}

// lookup asks the provider for one batch of missing destinations and fills in
// whatever it answers.
func (s *DistanceService) lookup(
	ctx context.Context,
	lookupCtx context.Context,
	origin string,
	batch []int,
	destinations []string,
	nearby []models.NearbyBooking,
) {
	log := s.log.Function("lookup").TraceFromContext(ctx)

	query := make([]string, len(batch))
	for j, i := range batch {
		query[j] = destinations[i]
	}

	distances, err := s.provider.Distances(lookupCtx, origin, query)
	if err != nil {
		log.Warn("distance lookup failed, distances unknown", "error", err, "destinations", len(query))
		return
	}

	for j, i := range batch {
		if j >= len(distances) || distances[j] == nil {
			continue
		}
		nearby[i].Distance = *distances[j]
		s.store(ctx, origin, destinations[i], *distances[j])
	}
}

// Annotate returns the bookings with distances from origin, nearest first.
func (s *DistanceService) Annotate(
	ctx context.Context,
	origin string,
	bookings []models.Booking,
) []models.NearbyBooking {
	nearby := make([]models.NearbyBooking, len(bookings))
	destinations := make([]string, len(bookings))
	missing := make([]int, 0, len(bookings))

	for i := range bookings {
		nearby[i] = models.NearbyBooking{Booking: bookings[i], Distance: UnknownDistance}

		var address *models.Address
		if bookings[i].Property != nil {
			address = bookings[i].Property.Address
		}
		destinations[i] = address.DestinationString()

		if origin == "" || destinations[i] == "" {
			continue
		}
		if meters, ok := s.cached(ctx, origin, destinations[i]); ok {
			nearby[i].Distance = meters
			continue
		}
		missing = append(missing, i)
	}

	if len(missing) > 0 && s.provider != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		for start := 0; start < len(missing); start += MAX_DESTINATIONS_PER_REQUEST {
			batch := missing[start:min(start+MAX_DESTINATIONS_PER_REQUEST, len(missing))]
			s.lookup(ctx, lookupCtx, origin, batch, destinations, nearby)
		}
	}

	SortByDistance(nearby)
	return nearby
}
