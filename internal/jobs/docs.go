// Package jobs provides scheduled background tasks for the fleet service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field specs with
// seconds) and observe the system only. No job changes trip state; status
// changes come from callers through the command handlers.
//
// # Available Jobs
//
// 1. OverdueTripsJob - logs SCHEDULED trips whose start is older than the
// configured grace period (OVERDUE_TRIPS_SCHEDULE, OVERDUE_TRIPS_GRACE)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOverdueTripsJob(handler, "0 */5 * * * *", 30*time.Minute, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		logger.WithError(err).Fatal("failed to start jobs")
//	}
//	defer jobManager.StopAll()
package jobs
