package discount

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"discounts/pkg/domain"
	"discounts/pkg/logger"
	"discounts/pkg/metrics"
	"discounts/pkg/serrors"
	"discounts/pkg/storage"
)

const (
	// DefaultMaxRadiusKm caps proximity searches when Options does not set one.
	DefaultMaxRadiusKm = 50.0

	// kmPerDegreeLatitude is the surface distance covered by one degree of
	// latitude. Longitude degrees shrink with the cosine of the latitude.
	kmPerDegreeLatitude = 111.0
)

// Options configures a discount Service.
type Options struct {
	// MaxRadiusKm is the largest radius Nearby accepts. Zero means
	// DefaultMaxRadiusKm.
	MaxRadiusKm float64
	// SweepUniquePeriod is the lookback window during which duplicate expiry
	// sweep jobs are suppressed. Zero means DefaultSweepUniquePeriod.
	SweepUniquePeriod time.Duration
}

type service struct {
	storage storage.Storage
	opts    Options

	// now is swapped out in tests.
	now func() time.Time
}

// New creates a Service backed by the given storage.
func New(strg storage.Storage, opts Options) Service {
	if opts.MaxRadiusKm <= 0 {
		opts.MaxRadiusKm = DefaultMaxRadiusKm
	}
	if opts.SweepUniquePeriod <= 0 {
		opts.SweepUniquePeriod = DefaultSweepUniquePeriod
	}

	return &service{
		storage: strg,
		opts:    opts,
		now:     time.Now,
	}
}

// searchWindow converts a radius around a center point into a coordinate
// rectangle for the SQL prefilter. The rectangle circumscribes the circle, so
// it can only over-select; the exact haversine check afterwards trims the
// corners.
func searchWindow(center domain.Location, radiusKm float64) storage.CoordinateWindow {
	latDelta := radiusKm / kmPerDegreeLatitude
	lonDelta := radiusKm / (kmPerDegreeLatitude * math.Cos(center.Latitude()*math.Pi/180))

	return storage.CoordinateWindow{
		MinLatitude:  center.Latitude() - latDelta,
		MaxLatitude:  center.Latitude() + latDelta,
		MinLongitude: center.Longitude() - lonDelta,
		MaxLongitude: center.Longitude() + lonDelta,
	}
}

// Nearby looks up active discounts around a point. The candidate set comes
// from a rectangular SQL prefilter; the exact radius and validity checks run
// here so the distance semantics live in one place, the domain layer.
func (s *service) Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]domain.Discount, error) {
	center, err := domain.NewLocation(latitude, longitude)
	if err != nil {
		return nil, err
	}

	if radiusKm <= 0 || radiusKm > s.opts.MaxRadiusKm {
		return nil, serrors.With(serrors.ErrBadRequest,
			"radius must be greater than 0 and at most %.0f km", s.opts.MaxRadiusKm)
	}

	candidates, err := s.storage.ActiveDiscountsWithin(ctx, searchWindow(center, radiusKm))
	if err != nil {
		return nil, fmt.Errorf("could not query discounts: %w", err)
	}

	now := s.now()
	matched := make([]domain.Discount, 0, len(candidates))
	distances := make(map[domain.DiscountID]float64, len(candidates))
	for _, d := range candidates {
		if !d.Valid(now) {
			continue
		}
		dist := center.DistanceTo(d.StoreLocation)
		if dist > radiusKm {
			continue
		}
		matched = append(matched, d)
		distances[d.ID] = dist
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return distances[matched[i].ID] < distances[matched[j].ID]
	})

	logger.Debug(ctx, "nearby discounts resolved",
		zap.Int("candidates", len(candidates)),
		zap.Int("matched", len(matched)),
		zap.Float64("radiusKm", radiusKm))

	return matched, nil
}

// Publish validates the inputs, stores them and schedules an expiry sweep at
// the earliest ValidUntil, all inside one transaction so a failed job insert
// never leaves discounts without a scheduled sweep.
func (s *service) Publish(ctx context.Context, inputs ...NewDiscount) ([]domain.Discount, error) {
	if len(inputs) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "no discounts to publish")
	}

	now := s.now()
	toStore := make([]domain.Discount, 0, len(inputs))
	earliest := time.Time{}
	for _, in := range inputs {
		loc, err := domain.NewLocation(in.Latitude, in.Longitude)
		if err != nil {
			return nil, err
		}
		if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
			return nil, serrors.With(serrors.ErrBadRequest,
				"discount percentage must be between 0 and 100, got %d", in.DiscountPercentage)
		}
		if !in.ValidUntil.After(now) {
			return nil, serrors.With(serrors.ErrBadRequest, "validUntil must be in the future")
		}
		if earliest.IsZero() || in.ValidUntil.Before(earliest) {
			earliest = in.ValidUntil
		}

		toStore = append(toStore, domain.Discount{
			Title:              in.Title,
			Description:        in.Description,
			DiscountPercentage: in.DiscountPercentage,
			StoreName:          in.StoreName,
			StoreLocation:      loc,
			ValidUntil:         in.ValidUntil,
			Active:             true,
		})
	}

	var stored []domain.Discount
	err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		stored, err = tx.StoreDiscounts(ctx, toStore...)
		if err != nil {
			return fmt.Errorf("could not store discounts: %w", err)
		}

		_, err = tx.AddJob(ctx, SweepArgs{uniquePeriod: s.opts.SweepUniquePeriod}, &river.InsertOpts{
			ScheduledAt: earliest,
		})
		if err != nil {
			return fmt.Errorf("could not schedule expiry sweep: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not publish discounts: %w", err)
	}

	logger.Info(ctx, "discounts published",
		zap.Int("count", len(stored)),
		zap.Time("sweepAt", earliest))

	return stored, nil
}

// ExpireOutdated deactivates every discount past its validity window.
func (s *service) ExpireOutdated(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.storage.DeactivateExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("could not deactivate expired discounts: %w", err)
	}

	if expired > 0 {
		metrics.DiscountsExpired.Add(float64(expired))
		logger.Info(ctx, "expired discounts deactivated", zap.Int64("count", expired))
	}

	return expired, nil
}
