package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/kernel"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOverdueTripsQueryHandler struct {
	mock.Mock
}

func (m *MockOverdueTripsQueryHandler) Handle(
	ctx context.Context,
	query queries.GetOverdueTripsQuery,
) ([]queries.TripView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.TripView), args.Error(1)
}

var now = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

func newJob(handler OverdueTripsQueryHandler, schedule string) (*OverdueTripsJob, *test.Hook) {
	log, hook := test.NewNullLogger()
	job := NewOverdueTripsJob(handler, schedule, 30*time.Minute, log)
	job.now = func() time.Time { return now }
	return job, hook
}

func TestOverdueTripsJob_RunLogsEachTrip(t *testing.T) {
	ctx := context.Background()
	trip := queries.TripView{
		ID:             kernel.NewUUID().Bytes(),
		VehicleID:      kernel.NewUUID().Bytes(),
		DriverID:       kernel.NewUUID().Bytes(),
		Status:         "SCHEDULED",
		ScheduledStart: now.Add(-45 * time.Minute),
	}
	handler := new(MockOverdueTripsQueryHandler)
	handler.On("Handle", ctx, mock.MatchedBy(func(q queries.GetOverdueTripsQuery) bool {
		return q.Cutoff().Equal(now.Add(-30 * time.Minute))
	})).Return([]queries.TripView{trip}, nil).Once()
	job, hook := newJob(handler, "0 */5 * * * *")

	found := job.Run(ctx)

	assert.Equal(t, 1, found)
	handler.AssertExpectations(t)
	var warned *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = e
		}
	}
	require.NotNil(t, warned)
	assert.Equal(t, trip.ID.String(), warned.Data["trip_id"])
	assert.Equal(t, 45*time.Minute, warned.Data["late_by"])
	assert.Equal(t, "overdue_trips_job", warned.Data["component"])
}

func TestOverdueTripsJob_RunNothingOverdue(t *testing.T) {
	handler := new(MockOverdueTripsQueryHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return([]queries.TripView{}, nil).Once()
	job, hook := newJob(handler, "0 */5 * * * *")

	assert.Zero(t, job.Run(context.Background()))
	assert.Empty(t, hook.AllEntries())
}

func TestOverdueTripsJob_RunLogsFailure(t *testing.T) {
	handler := new(MockOverdueTripsQueryHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
	job, hook := newJob(handler, "0 */5 * * * *")

	assert.Zero(t, job.Run(context.Background()))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "Overdue trips job failed", hook.LastEntry().Message)
}

func TestOverdueTripsJob_StartRejectsBadSchedule(t *testing.T) {
	job, _ := newJob(new(MockOverdueTripsQueryHandler), "every five minutes")

	require.Error(t, job.Start())
}

func TestOverdueTripsJob_RunsOnSchedule(t *testing.T) {
	ran := make(chan struct{}, 1)
	handler := new(MockOverdueTripsQueryHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return([]queries.TripView{}, nil).
		Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		})
	job, _ := newJob(handler, "* * * * * *")

	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run within its schedule")
	}
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (f fakeJob) Name() string { return f.name }

func (f fakeJob) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f fakeJob) Stop() {
	*f.log = append(*f.log, "stop "+f.name)
}

func TestJobManager_StartAllStopAll(t *testing.T) {
	var log []string
	jm := NewJobManager(fakeJob{name: "a", log: &log}, fakeJob{name: "b", log: &log})

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	var log []string
	boom := errors.New("bad schedule")
	jm := NewJobManager(
		fakeJob{name: "a", log: &log},
		fakeJob{name: "b", startErr: boom, log: &log},
		fakeJob{name: "c", log: &log},
	)

	err := jm.StartAll()

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to start b job")
	assert.Equal(t, []string{"start a", "stop a"}, log)

	jm.StopAll()
	assert.Equal(t, []string{"start a", "stop a"}, log)
}
