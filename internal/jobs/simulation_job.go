package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

type SimulationRunner interface {
	Run(ctx context.Context, params domain.SimulationParameters, trigger domain.SimulationTrigger) (*domain.SimulationRun, error)
}

// SimulationJob 按 cron 表达式定时用默认参数运行一次模拟
type SimulationJob struct {
	runner  SimulationRunner
	params  domain.SimulationParameters
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewSimulationJob(runner SimulationRunner, params domain.SimulationParameters, spec string, timeout time.Duration, logger *slog.Logger) *SimulationJob {
	// 上一次模拟还没结束时跳过本次触发
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	return &SimulationJob{
		runner:  runner,
		params:  params,
		spec:    spec,
		timeout: timeout,
		cron:    c,
		logger:  logger.With("component", "simulation_job"),
	}
}

func (j *SimulationJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.RunOnce); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("定时模拟任务已启动", "spec", j.spec)
	return nil
}

// Stop 等待正在执行的模拟结束
func (j *SimulationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("定时模拟任务已停止")
}

func (j *SimulationJob) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	run, err := j.runner.Run(ctx, j.params, domain.SimulationTriggerScheduled)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPendingOrders), errors.Is(err, domain.ErrInsufficientDrivers):
			// 没有可模拟的数据是正常情况
			j.logger.Info("跳过定时模拟", "reason", err.Error())
		default:
			j.logger.Error("定时模拟失败", "error", err)
		}
		return
	}

	j.logger.Info("定时模拟完成", "runID", run.ID, "efficiency", run.Result.EfficiencyScore)
}
