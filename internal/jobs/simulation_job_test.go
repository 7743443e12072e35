package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/jobs"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, params domain.SimulationParameters, trigger domain.SimulationTrigger) (*domain.SimulationRun, error) {
	args := m.Called(ctx, params, trigger)
	run, _ := args.Get(0).(*domain.SimulationRun)
	return run, args.Error(1)
}

func defaultParams() domain.SimulationParameters {
	return domain.SimulationParameters{
		AvailableDrivers:        5,
		RouteStartTime:          "09:00",
		MaxHoursPerDriverPerDay: 8,
		SaturationPolicy:        domain.SaturationPolicySkip,
	}
}

func newJob(runner jobs.SimulationRunner, spec string) (*jobs.SimulationJob, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return jobs.NewSimulationJob(runner, defaultParams(), spec, time.Second, logger), buf
}

func TestRunOnce_UsesScheduledTrigger(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, defaultParams(), domain.SimulationTriggerScheduled).
		Return(&domain.SimulationRun{ID: 3}, nil).Once()

	job, buf := newJob(runner, "0 0 6 * * *")
	job.RunOnce()

	runner.AssertExpectations(t)
	assert.Contains(t, buf.String(), "定时模拟完成")
	assert.Contains(t, buf.String(), "runID=3")
}

func TestRunOnce_NothingToSimulate(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"no pending orders", domain.ErrNoPendingOrders},
		{"no drivers", domain.ErrInsufficientDrivers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(MockRunner)
			runner.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			job, buf := newJob(runner, "0 0 6 * * *")
			job.RunOnce()

			assert.Contains(t, buf.String(), "level=INFO")
			assert.NotContains(t, buf.String(), "level=ERROR")
		})
	}
}

func TestRunOnce_FailureIsLogged(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	job, buf := newJob(runner, "0 0 6 * * *")
	job.RunOnce()

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "db down")
}

func TestStart_InvalidSpec(t *testing.T) {
	job, _ := newJob(new(MockRunner), "not a cron spec")
	assert.Error(t, job.Start())
}

func TestStart_FiresOnSchedule(t *testing.T) {
	fired := make(chan struct{}, 1)
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, mock.Anything, domain.SimulationTriggerScheduled).
		Run(func(mock.Arguments) {
			select {
			case fired <- struct{}{}:
			default:
			}
		}).
		Return(&domain.SimulationRun{ID: 1}, nil)

	job, _ := newJob(runner, "* * * * * *")
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("定时任务没有被触发")
	}
}
