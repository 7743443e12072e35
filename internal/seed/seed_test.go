package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

func TestEmbeddedSampleData(t *testing.T) {
	drivers, err := parseEmbedded("data/drivers.csv", ParseDrivers)
	require.NoError(t, err)
	require.Len(t, drivers, 10)
	assert.Equal(t, "DRV001", drivers[0].Code)
	assert.Equal(t, "Rajesh Kumar", drivers[0].Name)
	assert.Equal(t, [7]float64{6, 8, 7, 9, 8, 6, 7}, drivers[0].Past7DaysWorkHours)

	// Vikram Sharma 最近一天工作了 9 小时
	assert.True(t, drivers[3].HasFatigue())
	assert.False(t, drivers[0].HasFatigue())

	routes, err := parseEmbedded("data/routes.csv", ParseRoutes)
	require.NoError(t, err)
	require.Len(t, routes, 8)
	assert.Equal(t, "RT003", routes[2].Code)
	assert.Equal(t, domain.TrafficLevelHigh, routes[2].TrafficLevel)
	assert.InDelta(t, 8.7, routes[2].DistanceKm, 1e-9)
	assert.InDelta(t, 35.0, routes[2].BaseTimeMinutes, 1e-9)
}

func TestParseDrivers_Invalid(t *testing.T) {
	testCases := map[string]string{
		"missing column": "姓名,编号,当前班次时长\nA,DRV001,0\n",
		"six days":       "姓名,编号,当前班次时长,前7天工作时长\nA,DRV001,0,1;2;3;4;5;6\n",
		"bad hours":      "姓名,编号,当前班次时长,前7天工作时长\nA,DRV001,x,1;2;3;4;5;6;7\n",
		"bad day":        "姓名,编号,当前班次时长,前7天工作时长\nA,DRV001,0,1;2;3;4;5;6;x\n",
	}

	for name, input := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDrivers(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestParseRoutes_UnknownTrafficLevel(t *testing.T) {
	input := "编号,距离,交通状况,基础时长,描述\nRT001,10,Jammed,30,x\n"

	_, err := ParseRoutes(strings.NewReader(input))
	assert.ErrorContains(t, err, "交通状况无效")
}
