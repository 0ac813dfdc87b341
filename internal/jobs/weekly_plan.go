// Package jobs runs scheduled background work for the service.
package jobs

import (
	"context"
	"fmt"
	"shop-delivery-service/internal/ports"
	"shop-delivery-service/internal/services"
	"time"

	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// WeeklyPlanJob computes the upcoming week's plan on a schedule and logs a
// dispatch summary. Geocoding performed while planning is persisted, so the
// job also warms coordinates before the week's first request.
type WeeklyPlanJob struct {
	Repo     ports.ShopRepository
	Geocoder ports.Geocoder
	Request  services.PlanWeekRequest
	Timeout  time.Duration

	// Now is overridable for tests.
	Now func() time.Time

	cron *cron.Cron
}

// Run plans the week containing Now and logs the result.
func (j *WeeklyPlanJob) Run(ctx context.Context) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	req := j.Request
	req.Week = services.WeekNumber(now())

	plan, err := services.PlanWeek(ctx, req, j.Repo, j.Geocoder)
	if err != nil {
		return fmt.Errorf("weekly plan job: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"week":           plan.Week,
		"deliveries":     len(plan.Deliveries),
		"total_volume":   plan.TotalVolume,
		"stops":          len(plan.Route),
		"unrouted":       len(plan.Unrouted),
		"route_distance": plan.DistanceMeters(),
	}).Info("weekly delivery plan")

	return nil
}

// Start schedules Run with a six-field cron spec (seconds first).
func (j *WeeklyPlanJob) Start(spec string) error {
	c := cron.New()
	err := c.AddFunc(spec, func() {
		if err := j.Run(context.Background()); err != nil {
			logrus.Errorf("weekly plan job failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("weekly plan job: schedule %q: %w", spec, err)
	}

	c.Start()
	j.cron = c
	logrus.WithField("schedule", spec).Info("weekly plan job scheduled")
	return nil
}

// Stop halts the scheduler. A run already in progress is not interrupted.
func (j *WeeklyPlanJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}
