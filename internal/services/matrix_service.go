package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/repositories"
	"tripflow/internal/scheduler"
	mem "tripflow/pkg/memcache"
	"tripflow/pkg/metrics"
	"tripflow/pkg/utils"
)

const (
	matrixCacheTTL = 24 * time.Hour
	pairCacheTTL   = 7 * 24 * time.Hour
)

type MatrixServiceInterface interface {
	// BuildTravelMatrix computes pairwise durations for every located POI
	// and accommodation of the trip, reading the pair cache first and
	// calling openrouteservice only when something is missing.
	BuildTravelMatrix(ctx context.Context, trip *dbm.Trip, pois []dbm.POI, accommodations []dbm.Accommodation, profile string) (scheduler.TravelMatrix, error)

	// CachedTravelMatrix returns the trip's precomputed matrix from Redis,
	// or nil when the cache is cold. A nil matrix is always usable.
	CachedTravelMatrix(ctx context.Context, tripID, profile string) (scheduler.TravelMatrix, error)

	// RefreshTripMatrix rebuilds the matrix for the trip's own transport
	// profile and stores it in Redis. The background worker calls this.
	RefreshTripMatrix(ctx context.Context, tripID string) error
}

type MatrixService struct {
	ors               ORSClientInterface
	pairs             *mem.PairCache
	redis             *redis.Client
	tripRepo          repositories.TripRepository
	poiRepo           repositories.POIRepository
	accommodationRepo repositories.AccommodationRepository
}

func NewMatrixService(
	ors ORSClientInterface,
	pairs *mem.PairCache,
	redisClient *redis.Client,
	tripRepo repositories.TripRepository,
	poiRepo repositories.POIRepository,
	accommodationRepo repositories.AccommodationRepository,
) MatrixServiceInterface {
	return &MatrixService{
		ors:               ors,
		pairs:             pairs,
		redis:             redisClient,
		tripRepo:          tripRepo,
		poiRepo:           poiRepo,
		accommodationRepo: accommodationRepo,
	}
}

func NewPairCache() *mem.PairCache {
	return mem.NewPairCache(pairCacheTTL)
}

type matrixPoint struct {
	key scheduler.LocationKey
	lat float64
	lon float64
}

func collectMatrixPoints(pois []dbm.POI, accommodations []dbm.Accommodation) []matrixPoint {
	points := make([]matrixPoint, 0, len(pois)+len(accommodations))
	for _, p := range pois {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		points = append(points, matrixPoint{
			key: scheduler.POIKey(p.ID.String()),
			lat: *p.Latitude,
			lon: *p.Longitude,
		})
	}
	for _, a := range accommodations {
		if a.Latitude == nil || a.Longitude == nil {
			continue
		}
		points = append(points, matrixPoint{
			key: scheduler.AccommodationKey(a.DayNumber),
			lat: *a.Latitude,
			lon: *a.Longitude,
		})
	}
	return points
}

func (s *MatrixService) BuildTravelMatrix(
	ctx context.Context,
	trip *dbm.Trip,
	pois []dbm.POI,
	accommodations []dbm.Accommodation,
	profile string,
) (scheduler.TravelMatrix, error) {
	points := collectMatrixPoints(pois, accommodations)
	n := len(points)
	if n == 0 {
		return scheduler.TravelMatrix{}, nil
	}

	mat := make(scheduler.TravelMatrix, n)
	for _, p := range points {
		mat[p.key] = make(map[scheduler.LocationKey]float64, n)
	}

	// 1) Serve what the pair cache already knows.
	needCall := false
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				mat[points[i].key][points[j].key] = 0
				continue
			}
			seconds, ok := s.pairs.Get(profile, points[i].key.String(), points[j].key.String())
			if ok {
				mat[points[i].key][points[j].key] = seconds
			} else {
				needCall = true
			}
		}
	}

	// 2) One bulk matrix call covers every missing pair.
	if needCall && n >= 2 {
		started := time.Now()
		locations := make([][]float64, 0, n)
		for _, p := range points {
			locations = append(locations, []float64{p.lon, p.lat})
		}

		durations, err := s.ors.Durations(ctx, profile, locations)
		if err != nil {
			return nil, fmt.Errorf("ors matrix: %w", err)
		}
		metrics.RecordMatrixBuild(time.Since(started))

		for i := 0; i < n && i < len(durations); i++ {
			row := make(map[string]float64, n)
			for j := 0; j < len(durations[i]); j++ {
				if i == j {
					continue
				}
				// Unreachable pairs stay absent so the straight-line
				// estimate covers them.
				if durations[i][j] == nil {
					continue
				}
				seconds := *durations[i][j]
				mat[points[i].key][points[j].key] = seconds
				row[points[j].key.String()] = seconds
			}
			s.pairs.PutBatch(profile, points[i].key.String(), row)
		}
	}

	s.storeMatrix(ctx, trip.ID.String(), profile, mat)

	return mat, nil
}

func (s *MatrixService) CachedTravelMatrix(ctx context.Context, tripID, profile string) (scheduler.TravelMatrix, error) {
	if s.redis == nil {
		return nil, nil
	}

	raw, err := s.redis.Get(ctx, matrixCacheKey(tripID, profile)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var wire map[string]map[string]float64
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("corrupt matrix cache entry: %w", err)
	}

	mat := make(scheduler.TravelMatrix, len(wire))
	for fromStr, row := range wire {
		from, ok := scheduler.ParseLocationKey(fromStr)
		if !ok {
			continue
		}
		dst := make(map[scheduler.LocationKey]float64, len(row))
		for toStr, seconds := range row {
			to, ok := scheduler.ParseLocationKey(toStr)
			if !ok {
				continue
			}
			dst[to] = seconds
		}
		mat[from] = dst
	}

	return mat, nil
}

func (s *MatrixService) RefreshTripMatrix(ctx context.Context, tripID string) error {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}

	pois, err := s.poiRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}

	accommodations, err := s.accommodationRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}

	_, err = s.BuildTravelMatrix(ctx, trip, pois, accommodations, trip.TransportProfile)
	return err
}

// storeMatrix is advisory: a failed cache write only costs the next run an
// ORS call.
func (s *MatrixService) storeMatrix(ctx context.Context, tripID, profile string, mat scheduler.TravelMatrix) {
	if s.redis == nil || len(mat) == 0 {
		return
	}

	wire := make(map[string]map[string]float64, len(mat))
	for from, row := range mat {
		dst := make(map[string]float64, len(row))
		for to, seconds := range row {
			dst[to.String()] = seconds
		}
		wire[from.String()] = dst
	}

	raw, err := json.Marshal(wire)
	if err != nil {
		log.Printf("matrix cache marshal failed: %v", err)
		return
	}

	if err := s.redis.Set(ctx, matrixCacheKey(tripID, profile), raw, matrixCacheTTL).Err(); err != nil {
		log.Printf("matrix cache write failed: %v", err)
	}
}

func matrixCacheKey(tripID, profile string) string {
	return fmt.Sprintf("matrix:%s:%s", tripID, profile)
}
