package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/services"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubRepo struct {
	shops []*domain.Shop
	err   error
}

func (r *stubRepo) ListShops(ctx context.Context) ([]*domain.Shop, error) { return r.shops, r.err }

func (r *stubRepo) GetShop(ctx context.Context, shopID int) (*domain.Shop, error) {
	return nil, errors.New("not implemented")
}

func (r *stubRepo) SetLocation(ctx context.Context, shopID int, loc domain.Location) error {
	return nil
}

func TestWeeklyPlanJobRunLogsSummary(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	first := 1
	repo := &stubRepo{shops: []*domain.Shop{{
		ShopID:            1,
		Name:              "Corner Cafe",
		Location:          &domain.Location{Lat: 0.01, Lon: 0},
		FirstDeliveryWeek: &first,
		DeliveryFrequency: domain.FrequencyWeekly,
		Volume:            "8",
	}}}

	job := &WeeklyPlanJob{
		Repo:    repo,
		Request: services.PlanWeekRequest{MaxStops: 5, MaxDistanceKm: 10},
		Timeout: time.Second,
		Now:     func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) },
	}

	require.NoError(t, job.Run(context.Background()))

	var summary *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "weekly delivery plan" {
			summary = e
		}
	}
	require.NotNil(t, summary)
	assert.Equal(t, 11, summary.Data["week"])
	assert.Equal(t, 1, summary.Data["stops"])
	assert.Equal(t, 8.0, summary.Data["total_volume"])
}

func TestWeeklyPlanJobRunPropagatesErrors(t *testing.T) {
	job := &WeeklyPlanJob{
		Repo:    &stubRepo{err: errors.New("db down")},
		Request: services.PlanWeekRequest{MaxStops: 5, MaxDistanceKm: 10},
	}
	assert.Error(t, job.Run(context.Background()))
}

func TestWeeklyPlanJobStartRejectsBadSpec(t *testing.T) {
	job := &WeeklyPlanJob{}
	assert.Error(t, job.Start("not a cron spec"))
	job.Stop()
}

func TestWeeklyPlanJobStartStop(t *testing.T) {
	job := &WeeklyPlanJob{
		Repo:    &stubRepo{},
		Request: services.PlanWeekRequest{MaxStops: 5, MaxDistanceKm: 10},
	}
	require.NoError(t, job.Start("0 0 6 * * 1"))
	job.Stop()
	// Give the scheduler goroutine a moment to observe the stop signal.
	time.Sleep(50 * time.Millisecond)
}
