package utils_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/utils"
)

func TestGenerateCodeFromChineseName(t *testing.T) {
	code := utils.GenerateCodeFromChineseName("王小明")

	assert.Regexp(t, regexp.MustCompile(`^wxm\d{4}$`), code)
}

func TestGenerateRandomDriver(t *testing.T) {
	for i := 0; i < 20; i++ {
		driver := utils.GenerateRandomDriver()

		assert.NotEmpty(t, driver.Name)
		assert.Regexp(t, `^[a-z]+\d{4}$`, driver.Code)
		for _, hours := range driver.Past7DaysWorkHours {
			assert.GreaterOrEqual(t, hours, 6.0)
			assert.LessOrEqual(t, hours, 10.0)
		}
	}
}

func TestGenerateRandomOrder(t *testing.T) {
	routes := []*domain.Route{{ID: 3}, {ID: 4}}

	order := utils.GenerateRandomOrder(7, routes)

	assert.Equal(t, "ORD007", order.Code)
	assert.Equal(t, "9876500007", order.CustomerPhone)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Contains(t, []int64{3, 4}, order.RouteID)
	assert.GreaterOrEqual(t, order.Value, 200.0)
	assert.LessOrEqual(t, order.Value, 5000.0)
	require.False(t, order.DeliveryDeadline.IsZero())
}
