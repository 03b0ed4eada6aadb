package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockRecurringService struct {
	mock.Mock
}

func (m *MockRecurringService) ProcessRecurringContributions(ctx context.Context, day time.Time) (*domain.RecurringRun, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringRun), args.Error(1)
}

type SchedulerTestSuite struct {
	suite.Suite
	service   *MockRecurringService
	scheduler *Scheduler
	belgrade  *time.Location
	now       time.Time
}

func (suite *SchedulerTestSuite) SetupTest() {
	suite.service = new(MockRecurringService)
	suite.belgrade = time.FixedZone("CET", 3600)
	// 23:30 UTC on the 14th is already the 15th in Belgrade.
	suite.now = time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	suite.scheduler = NewScheduler(suite.service,
		WithLocation(suite.belgrade),
		WithRunTimeout(time.Minute),
		WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *SchedulerTestSuite) TestRegisterRecurring_RejectsBadSpec() {
	err := suite.scheduler.RegisterRecurring("every morning")

	suite.Error(err)
	suite.Empty(suite.scheduler.cron.Entries())
}

func (suite *SchedulerTestSuite) TestRunRecurringNow_UsesSchedulerZoneAndDeadline() {
	run := &domain.RecurringRun{RunOn: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Due: 2, Processed: 2}
	suite.service.On("ProcessRecurringContributions",
		mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}),
		mock.MatchedBy(func(day time.Time) bool {
			return day.Day() == 15 && day.Location() == suite.belgrade
		}),
	).Return(run, nil).Once()

	got, err := suite.scheduler.RunRecurringNow(context.Background())

	suite.Require().NoError(err)
	suite.Equal(run, got)
	suite.service.AssertExpectations(suite.T())
}

func (suite *SchedulerTestSuite) TestRegisteredJobRunsProcessor() {
	suite.Require().NoError(suite.scheduler.RegisterRecurring("0 6 * * *"))
	entries := suite.scheduler.cron.Entries()
	suite.Require().Len(entries, 1)

	suite.service.On("ProcessRecurringContributions", mock.Anything, mock.Anything).
		Return(nil, errors.New("database down")).Once()

	// A failing run is logged, never propagated out of the job.
	suite.NotPanics(func() { entries[0].Job.Run() })
	suite.service.AssertNumberOfCalls(suite.T(), "ProcessRecurringContributions", 1)
}

func (suite *SchedulerTestSuite) TestStartStop() {
	suite.Require().NoError(suite.scheduler.RegisterRecurring("0 6 * * *"))
	suite.scheduler.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	suite.scheduler.Stop(ctx)

	suite.NoError(ctx.Err())
	suite.service.AssertNotCalled(suite.T(), "ProcessRecurringContributions", mock.Anything, mock.Anything)
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}
