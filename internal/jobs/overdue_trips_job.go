package jobs

import (
	"context"
	"fmt"
	"time"

	"fleet/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// OverdueTripsQueryHandler is satisfied by queries.GetOverdueTripsQueryHandler.
type OverdueTripsQueryHandler interface {
	Handle(ctx context.Context, query queries.GetOverdueTripsQuery) ([]queries.TripView, error)
}

// OverdueTripsJob reports SCHEDULED trips whose start lies more than grace
// in the past. It only reads; trips are never transitioned from here.
type OverdueTripsJob struct {
	handler  OverdueTripsQueryHandler
	schedule string
	grace    time.Duration
	timeout  time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   logrus.FieldLogger
}

// NewOverdueTripsJob creates the job. schedule is a six-field cron spec
// (seconds first).
func NewOverdueTripsJob(
	handler OverdueTripsQueryHandler,
	schedule string,
	grace time.Duration,
	logger logrus.FieldLogger,
) *OverdueTripsJob {
	return &OverdueTripsJob{
		handler:  handler,
		schedule: schedule,
		grace:    grace,
		timeout:  30 * time.Second,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.WithField("component", "overdue_trips_job"),
	}
}

func (j *OverdueTripsJob) Name() string {
	return "overdue trips"
}

// Start registers the job on its schedule and starts the scheduler.
func (j *OverdueTripsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.WithFields(logrus.Fields{
		"schedule": j.schedule,
		"grace":    j.grace,
	}).Info("Overdue trips job started")
	return nil
}

// Run performs one check and returns the number of overdue trips found.
func (j *OverdueTripsJob) Run(ctx context.Context) int {
	query, err := queries.NewGetOverdueTripsQuery(j.now(), j.grace)
	if err != nil {
		j.logger.WithError(err).Error("Overdue trips job misconfigured")
		return 0
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.WithError(err).Error("Overdue trips job failed")
		return 0
	}

	for _, t := range overdue {
		j.logger.WithFields(logrus.Fields{
			"trip_id":         t.ID.String(),
			"vehicle_id":      t.VehicleID.String(),
			"driver_id":       t.DriverID.String(),
			"scheduled_start": t.ScheduledStart.Format(time.RFC3339),
			"late_by":         query.Cutoff().Sub(t.ScheduledStart) + j.grace,
		}).Warn("Trip has not started")
	}
	if len(overdue) > 0 {
		j.logger.WithField("count", len(overdue)).Info("Overdue trips found")
	}
	return len(overdue)
}

// Stop stops the scheduler and waits for a running check to finish.
func (j *OverdueTripsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Overdue trips job stopped")
}
