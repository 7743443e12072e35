package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/cache"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.RunCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return cache.NewRunCache(rdb, ttl, time.Second), mr
}

func sampleRun() *domain.SimulationRun {
	driverID := int64(3)
	return &domain.SimulationRun{
		ID: 7,
		Parameters: domain.SimulationParameters{
			AvailableDrivers:        2,
			RouteStartTime:          "09:00",
			MaxHoursPerDriverPerDay: 8,
			SaturationPolicy:        domain.SaturationPolicySkip,
		},
		Result: domain.SimulationResult{
			TotalProfit:      1590,
			TotalOrders:      1,
			OnTimeDeliveries: 1,
			EfficiencyScore:  100,
			FuelCostBreakdown: domain.FuelCostBreakdown{
				TotalFuelCost:  60,
				ByTrafficLevel: domain.FuelCostByTrafficLevel{Medium: 60},
			},
			PerOrderResults: []domain.PerOrderOutcome{
				{
					OrderID:             11,
					OrderCode:           "ORD001",
					AssignedDriverID:    &driverID,
					Outcome:             domain.DeliveryOutcomeDelivered,
					DeliveryTimeMinutes: 66,
					Profit:              1590,
					Bonus:               150,
					FuelCost:            60,
					TrafficLevel:        domain.TrafficLevelMedium,
				},
			},
		},
		Trigger:   domain.SimulationTriggerManual,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRunCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	run, ok, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, run)
}

func TestRunCache_SetThenGet(t *testing.T) {
	c, mr := newTestCache(t, time.Hour)
	run := sampleRun()

	require.NoError(t, c.Set(context.Background(), run))
	assert.True(t, mr.Exists("simulation_run_7"))

	cached, ok, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, run.Result, cached.Result)
	assert.Equal(t, run.Parameters, cached.Parameters)
	assert.True(t, run.CreatedAt.Equal(cached.CreatedAt))
}

func TestRunCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, c.Set(context.Background(), sampleRun()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunCache_CorruptedEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Hour)
	require.NoError(t, mr.Set("simulation_run_9", "not json"))

	_, ok, err := c.Get(context.Background(), 9)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRunCache_Unavailable(t *testing.T) {
	c, mr := newTestCache(t, time.Hour)
	mr.Close()

	_, _, err := c.Get(context.Background(), 1)
	assert.Error(t, err)
}
