package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/report"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func sampleMessage() domain.ReportMessage {
	return domain.ReportMessage{
		RunID:            5,
		Trigger:          domain.SimulationTriggerScheduled,
		Timestamp:        time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC),
		AvailableDrivers: 3,
		TotalOrders:      4,
		OnTimeDeliveries: 3,
		LateDeliveries:   1,
		EfficiencyScore:  75,
		TotalProfit:      2310.5,
		TotalFuelCost:    140,
	}
}

func TestPublishReport(t *testing.T) {
	ch := new(MockChannel)
	msg := sampleMessage()

	ch.On("PublishWithContext", mock.Anything, "", "simulation_report_queue", true, false,
		mock.MatchedBy(func(p amqp.Publishing) bool {
			decoded := domain.ReportMessage{}
			if err := json.Unmarshal(p.Body, &decoded); err != nil {
				return false
			}
			return p.ContentType == "application/json" &&
				p.DeliveryMode == amqp.Persistent &&
				decoded.RunID == msg.RunID &&
				decoded.EfficiencyScore == msg.EfficiencyScore
		}),
	).Return(nil).Once()

	publisher := report.NewPublisher(ch, "simulation_report_queue", time.Second)
	require.NoError(t, publisher.PublishReport(context.Background(), msg))

	ch.AssertExpectations(t)
}

func TestPublishReport_ChannelError(t *testing.T) {
	ch := new(MockChannel)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	publisher := report.NewPublisher(ch, "q", time.Second)
	err := publisher.PublishReport(context.Background(), sampleMessage())

	assert.EqualError(t, err, "channel closed")
}

func TestPublishReport_AppliesTimeout(t *testing.T) {
	ch := new(MockChannel)
	ch.On("PublishWithContext", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	publisher := report.NewPublisher(ch, "q", time.Second)
	require.NoError(t, publisher.PublishReport(context.Background(), sampleMessage()))

	ch.AssertExpectations(t)
}
