package discount_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/require"

	"discounts/internal/discount"
	"discounts/pkg/domain"
	"discounts/pkg/logger"
	"discounts/pkg/serrors"
	"discounts/pkg/storage"
	"discounts/pkg/storage/storagetest"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func mustLocation(t *testing.T, lat, lon float64) domain.Location {
	t.Helper()

	loc, err := domain.NewLocation(lat, lon)
	require.NoError(t, err)

	return loc
}

func activeDiscount(t *testing.T, title string, lat, lon float64, validUntil time.Time) domain.Discount {
	t.Helper()

	return domain.Discount{
		ID:            domain.DiscountID(uuid.New()),
		Title:         title,
		StoreName:     title + " store",
		StoreLocation: mustLocation(t, lat, lon),
		ValidUntil:    validUntil,
		Active:        true,
	}
}

func TestNearby_FiltersAndSortsByDistance(t *testing.T) {
	t.Parallel()

	strg := &storagetest.Storage{}
	svc := discount.New(strg, discount.Options{})

	tomorrow := time.Now().Add(24 * time.Hour)
	yesterday := time.Now().Add(-24 * time.Hour)

	// all candidates come back from the coarse window prefilter; the service
	// must trim by exact distance and validity
	obeliscoCafe := activeDiscount(t, "obelisco cafe", -34.6040, -58.3818, tomorrow)   // a few meters away
	retiroBar := activeDiscount(t, "retiro bar", -34.5875, -58.3772, tomorrow)        // ~1.8 km away
	laPlataShop := activeDiscount(t, "la plata shop", -34.9215, -57.9545, tomorrow)   // ~52 km away
	expiredKiosk := activeDiscount(t, "expired kiosk", -34.6040, -58.3818, yesterday) // close but expired

	var seenWindow storage.CoordinateWindow
	strg.ActiveDiscountsWithinFunc = func(_ context.Context, window storage.CoordinateWindow) ([]domain.Discount, error) {
		seenWindow = window

		return []domain.Discount{laPlataShop, retiroBar, expiredKiosk, obeliscoCafe}, nil
	}

	found, err := svc.Nearby(context.Background(), -34.6037, -58.3816, 10)
	require.NoError(t, err)

	require.Len(t, found, 2)
	require.Equal(t, "obelisco cafe", found[0].Title)
	require.Equal(t, "retiro bar", found[1].Title)

	// the prefilter rectangle must circumscribe the 10 km circle
	require.Less(t, seenWindow.MinLatitude, -34.6037)
	require.Greater(t, seenWindow.MaxLatitude, -34.6037)
	require.InDelta(t, 10.0/111.0, seenWindow.MaxLatitude-(-34.6037), 0.001)
	require.Less(t, seenWindow.MinLongitude, -58.3816)
	require.Greater(t, seenWindow.MaxLongitude, -58.3816)
}

func TestNearby_RejectsPointsOutsideServiceArea(t *testing.T) {
	t.Parallel()

	strg := &storagetest.Storage{}
	svc := discount.New(strg, discount.Options{})

	// Paris is a valid coordinate but far outside the service area
	_, err := svc.Nearby(context.Background(), 48.8566, 2.3522, 5)
	require.ErrorIs(t, err, serrors.ErrInvalidLocation)
}

func TestNearby_RejectsBadRadius(t *testing.T) {
	t.Parallel()

	strg := &storagetest.Storage{}
	svc := discount.New(strg, discount.Options{MaxRadiusKm: 30})

	for _, radius := range []float64{0, -1, 31} {
		_, err := svc.Nearby(context.Background(), -34.6037, -58.3816, radius)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	}
}

func TestNearby_StorageFailure(t *testing.T) {
	t.Parallel()

	strg := &storagetest.Storage{}
	svc := discount.New(strg, discount.Options{})

	boom := errors.New("connection refused")
	strg.ActiveDiscountsWithinFunc = func(_ context.Context, _ storage.CoordinateWindow) ([]domain.Discount, error) {
		return nil, boom
	}

	_, err := svc.Nearby(context.Background(), -34.6037, -58.3816, 5)
	require.ErrorIs(t, err, boom)
}

func TestPublish_StoresAndSchedulesSweep(t *testing.T) {
	t.Parallel()

	strg := &storagetest.Storage{}
	svc := discount.New(strg, discount.Options{})

	soon := time.Now().Add(2 * time.Hour)
	later := time.Now().Add(48 * time.Hour)

	var persisted []domain.Discount
	strg.StoreDiscountsFunc = func(_ context.Context, ds ...domain.Discount) ([]domain.Discount, error) {
		persisted = ds

		return ds, nil
	}

	var jobArgs river.JobArgs
	var jobOpts *river.InsertOpts
	strg.AddJobFunc = func(_ context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
		jobArgs = args
		jobOpts = opts

		return true, nil
	}

	stored, err := svc.Publish(context.Background(),
		discount.NewDiscount{
			Title:              "two for one",
			StoreName:          "cafe martinez",
			DiscountPercentage: 50,
			Latitude:           -34.6037,
			Longitude:          -58.3816,
			ValidUntil:         later,
		},
		discount.NewDiscount{
			Title:              "happy hour",
			StoreName:          "bar notable",
			DiscountPercentage: 30,
			Latitude:           -34.5875,
			Longitude:          -58.3772,
			ValidUntil:         soon,
		},
	)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	for _, d := range persisted {
		require.True(t, d.Active)
	}

	// the sweep runs when the first discount expires
	require.Equal(t, "SweepExpiredDiscountsJob", jobArgs.Kind())
	require.NotNil(t, jobOpts)
	require.Equal(t, soon, jobOpts.ScheduledAt)
}

func TestPublish_Validation(t *testing.T) {
	t.Parallel()

	strg := &storagetest.Storage{}
	svc := discount.New(strg, discount.Options{})
	future := time.Now().Add(time.Hour)

	valid := discount.NewDiscount{
		Title:              "ok",
		StoreName:          "store",
		DiscountPercentage: 10,
		Latitude:           -34.6037,
		Longitude:          -58.3816,
		ValidUntil:         future,
	}

	t.Run("empty batch", func(t *testing.T) {
		_, err := svc.Publish(context.Background())
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})

	t.Run("location outside service area", func(t *testing.T) {
		bad := valid
		bad.Latitude, bad.Longitude = 40.7128, -74.0060
		_, err := svc.Publish(context.Background(), bad)
		require.ErrorIs(t, err, serrors.ErrInvalidLocation)
	})

	t.Run("percentage out of range", func(t *testing.T) {
		bad := valid
		bad.DiscountPercentage = 120
		_, err := svc.Publish(context.Background(), bad)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})

	t.Run("already expired", func(t *testing.T) {
		bad := valid
		bad.ValidUntil = time.Now().Add(-time.Minute)
		_, err := svc.Publish(context.Background(), bad)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})

	t.Run("one bad input fails the whole batch", func(t *testing.T) {
		bad := valid
		bad.DiscountPercentage = -1
		_, err := svc.Publish(context.Background(), valid, bad)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})
}

func TestPublish_JobFailureRollsBack(t *testing.T) {
	t.Parallel()

	strg := &storagetest.Storage{}
	svc := discount.New(strg, discount.Options{})

	strg.StoreDiscountsFunc = func(_ context.Context, ds ...domain.Discount) ([]domain.Discount, error) {
		return ds, nil
	}
	boom := errors.New("queue unavailable")
	strg.AddJobFunc = func(_ context.Context, _ river.JobArgs, _ *river.InsertOpts) (bool, error) {
		return false, boom
	}

	_, err := svc.Publish(context.Background(), discount.NewDiscount{
		Title:              "doomed",
		StoreName:          "store",
		DiscountPercentage: 10,
		Latitude:           -34.6037,
		Longitude:          -58.3816,
		ValidUntil:         time.Now().Add(time.Hour),
	})
	require.ErrorIs(t, err, boom)
}

func TestExpireOutdated(t *testing.T) {
	t.Parallel()

	strg := &storagetest.Storage{}
	svc := discount.New(strg, discount.Options{})

	var seenNow time.Time
	strg.DeactivateExpiredFunc = func(_ context.Context, now time.Time) (int64, error) {
		seenNow = now

		return 3, nil
	}

	now := time.Now()
	expired, err := svc.ExpireOutdated(context.Background(), now)
	require.NoError(t, err)
	require.EqualValues(t, 3, expired)
	require.Equal(t, now, seenNow)
}

func TestSweepArgs(t *testing.T) {
	t.Parallel()

	args := discount.SweepArgs{}
	require.Equal(t, "SweepExpiredDiscountsJob", args.Kind())

	opts := args.InsertOpts()
	require.True(t, opts.UniqueOpts.ByArgs)
	require.Equal(t, discount.DefaultSweepUniquePeriod, opts.UniqueOpts.ByPeriod)
}
