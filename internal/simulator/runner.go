package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

type SnapshotGateway interface {
	LoadSnapshot(ctx context.Context, requestedDriverCount int) (*domain.Snapshot, error)
}

// ResultSink 在一个事务中写入模拟记录并回写订单，成功后 run.ID 和 run.CreatedAt 会被填充
type ResultSink interface {
	InsertSimulationRun(ctx context.Context, run *domain.SimulationRun) error
}

type ReportPublisher interface {
	PublishReport(ctx context.Context, msg domain.ReportMessage) error
}

type Runner struct {
	gateway   SnapshotGateway
	sink      ResultSink
	publisher ReportPublisher // 可以为 nil
	logger    *slog.Logger
}

func NewRunner(gateway SnapshotGateway, sink ResultSink, publisher ReportPublisher, logger *slog.Logger) *Runner {
	return &Runner{
		gateway:   gateway,
		sink:      sink,
		publisher: publisher,
		logger:    logger.With("component", "simulation_runner"),
	}
}

/**
 * 完整地执行一次模拟：读取快照 -> 分配并计分 -> 持久化 -> 发布报告
 * 任何一步失败都不会留下部分写入的数据；报告发布失败只记录日志，因为此时结果已经提交
 */
func (r *Runner) Run(ctx context.Context, params domain.SimulationParameters, trigger domain.SimulationTrigger) (*domain.SimulationRun, error) {
	start := time.Now()

	if params.SaturationPolicy == "" {
		params.SaturationPolicy = domain.SaturationPolicySkip
	}

	// 司机数量不足属于运行时条件，优先于参数校验
	if params.AvailableDrivers < 1 {
		return nil, domain.ErrInsufficientDrivers
	}
	if err := ValidateParameters(&params); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidParameters, err)
	}

	snapshot, err := r.gateway.LoadSnapshot(ctx, params.AvailableDrivers)
	if err != nil {
		return nil, err
	}

	sim, err := New(&params, snapshot)
	if err != nil {
		return nil, err
	}

	result, err := sim.Simulate()
	if err != nil {
		return nil, err
	}

	run := &domain.SimulationRun{
		Parameters: params,
		Result:     *result,
		Trigger:    trigger,
	}
	if err := r.sink.InsertSimulationRun(ctx, run); err != nil {
		return nil, err
	}

	r.logger.Info("模拟运行完成",
		"runID", run.ID,
		"trigger", run.Trigger,
		"drivers", len(snapshot.Drivers),
		"orders", result.TotalOrders,
		"unassigned", result.UnassignedOrders,
		"efficiency", result.EfficiencyScore,
		"duration", time.Since(start),
	)

	if r.publisher != nil {
		if err := r.publisher.PublishReport(ctx, domain.NewReportMessage(run)); err != nil {
			r.logger.Error("无法发布模拟报告", "runID", run.ID, "error", err)
		}
	}

	return run, nil
}
