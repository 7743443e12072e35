package simulator_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/simulator"
)

type fakeGateway struct {
	snapshot *domain.Snapshot
	err      error

	mu        sync.Mutex
	requested []int
}

func (g *fakeGateway) LoadSnapshot(_ context.Context, requestedDriverCount int) (*domain.Snapshot, error) {
	g.mu.Lock()
	g.requested = append(g.requested, requestedDriverCount)
	g.mu.Unlock()

	if g.err != nil {
		return nil, g.err
	}
	return g.snapshot, nil
}

type fakeSink struct {
	err error

	mu   sync.Mutex
	runs []*domain.SimulationRun
}

func (s *fakeSink) InsertSimulationRun(_ context.Context, run *domain.SimulationRun) error {
	if s.err != nil {
		return s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, run)
	run.ID = int64(len(s.runs))
	run.CreatedAt = time.Now()
	return nil
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReport(ctx context.Context, msg domain.ReportMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validParameters() domain.SimulationParameters {
	return domain.SimulationParameters{
		AvailableDrivers:        1,
		RouteStartTime:          "09:00",
		MaxHoursPerDriverPerDay: 8,
	}
}

func singleOrderSnapshot() *domain.Snapshot {
	route := newRoute(1, 20, domain.TrafficLevelHigh, 60)
	return &domain.Snapshot{
		Drivers: []*domain.Driver{newDriver(1, 9)},
		Routes:  []*domain.Route{route},
		Orders:  []*domain.Order{newOrder(1, "ORD001", 1500, route, 0)},
	}
}

func TestRunner_Run(t *testing.T) {
	t.Run("persists the run and publishes a report", func(t *testing.T) {
		gateway := &fakeGateway{snapshot: singleOrderSnapshot()}
		sink := &fakeSink{}
		publisher := new(MockPublisher)
		publisher.On("PublishReport", mock.Anything, mock.MatchedBy(func(msg domain.ReportMessage) bool {
			return msg.RunID == 1 && msg.TotalOrders == 1 && msg.LateDeliveries == 1
		})).Return(nil).Once()

		runner := simulator.NewRunner(gateway, sink, publisher, discardLogger())
		run, err := runner.Run(context.Background(), validParameters(), domain.SimulationTriggerManual)

		require.NoError(t, err)
		assert.Equal(t, int64(1), run.ID)
		assert.Equal(t, domain.SimulationTriggerManual, run.Trigger)
		assert.Equal(t, domain.SaturationPolicySkip, run.Parameters.SaturationPolicy)
		assert.Equal(t, "09:00", run.Parameters.RouteStartTime)
		assert.Equal(t, 94, run.Result.PerOrderResults[0].DeliveryTimeMinutes)
		assert.Equal(t, []int{1}, gateway.requested)
		require.Len(t, sink.runs, 1)
		publisher.AssertExpectations(t)
	})

	t.Run("zero drivers is rejected before any read or write", func(t *testing.T) {
		gateway := &fakeGateway{snapshot: singleOrderSnapshot()}
		sink := &fakeSink{}

		params := validParameters()
		params.AvailableDrivers = 0

		run, err := simulator.NewRunner(gateway, sink, nil, discardLogger()).Run(context.Background(), params, domain.SimulationTriggerManual)

		assert.Nil(t, run)
		assert.ErrorIs(t, err, domain.ErrInsufficientDrivers)
		assert.Empty(t, gateway.requested)
		assert.Empty(t, sink.runs)
	})

	t.Run("out of range parameters are invalid", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(p *domain.SimulationParameters)
		}{
			{"too many drivers", func(p *domain.SimulationParameters) { p.AvailableDrivers = 51 }},
			{"bad start time", func(p *domain.SimulationParameters) { p.RouteStartTime = "25:00" }},
			{"missing start time", func(p *domain.SimulationParameters) { p.RouteStartTime = "" }},
			{"too few hours", func(p *domain.SimulationParameters) { p.MaxHoursPerDriverPerDay = 0.5 }},
			{"too many hours", func(p *domain.SimulationParameters) { p.MaxHoursPerDriverPerDay = 20 }},
			{"unknown policy", func(p *domain.SimulationParameters) { p.SaturationPolicy = "random" }},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				gateway := &fakeGateway{snapshot: singleOrderSnapshot()}
				sink := &fakeSink{}

				params := validParameters()
				tc.mutate(&params)

				_, err := simulator.NewRunner(gateway, sink, nil, discardLogger()).Run(context.Background(), params, domain.SimulationTriggerManual)

				assert.ErrorIs(t, err, domain.ErrInvalidParameters)
				var validationErrors validator.ValidationErrors
				assert.ErrorAs(t, err, &validationErrors)
				assert.Empty(t, gateway.requested)
				assert.Empty(t, sink.runs)
			})
		}
	})

	t.Run("gateway errors are surfaced and nothing is persisted", func(t *testing.T) {
		for _, gatewayErr := range []error{domain.ErrNoPendingOrders, domain.ErrInsufficientDrivers, errors.New("connection reset")} {
			sink := &fakeSink{}
			runner := simulator.NewRunner(&fakeGateway{err: gatewayErr}, sink, nil, discardLogger())

			_, err := runner.Run(context.Background(), validParameters(), domain.SimulationTriggerScheduled)

			assert.ErrorIs(t, err, gatewayErr)
			assert.Empty(t, sink.runs)
		}
	})

	t.Run("sink failure fails the run without a report", func(t *testing.T) {
		publisher := new(MockPublisher)
		sinkErr := errors.New("tx aborted")
		runner := simulator.NewRunner(&fakeGateway{snapshot: singleOrderSnapshot()}, &fakeSink{err: sinkErr}, publisher, discardLogger())

		_, err := runner.Run(context.Background(), validParameters(), domain.SimulationTriggerManual)

		assert.ErrorIs(t, err, sinkErr)
		publisher.AssertNotCalled(t, "PublishReport", mock.Anything, mock.Anything)
	})

	t.Run("report failure does not fail a committed run", func(t *testing.T) {
		publisher := new(MockPublisher)
		publisher.On("PublishReport", mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()
		sink := &fakeSink{}

		run, err := simulator.NewRunner(&fakeGateway{snapshot: singleOrderSnapshot()}, sink, publisher, discardLogger()).
			Run(context.Background(), validParameters(), domain.SimulationTriggerManual)

		require.NoError(t, err)
		assert.Equal(t, int64(1), run.ID)
		publisher.AssertExpectations(t)
	})
}

func TestRunner_ConcurrentRunsShareSnapshot(t *testing.T) {
	snapshot := saturatedSnapshot()
	gateway := &fakeGateway{snapshot: snapshot}
	sink := &fakeSink{}
	runner := simulator.NewRunner(gateway, sink, nil, discardLogger())

	params := validParameters()
	params.AvailableDrivers = 2
	params.MaxHoursPerDriverPerDay = 1

	const n = 8
	results := make([]*domain.SimulationRun, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			run, err := runner.Run(context.Background(), params, domain.SimulationTriggerManual)
			assert.NoError(t, err)
			results[i] = run
		}(i)
	}
	wg.Wait()

	require.Len(t, sink.runs, n)
	for _, run := range results[1:] {
		assert.Equal(t, results[0].Result, run.Result)
	}
	assert.Equal(t, 2, results[0].Result.UnassignedOrders)
}
