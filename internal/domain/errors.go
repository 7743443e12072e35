package domain

import "errors"

var (
	ErrInsufficientDrivers = errors.New("没有可用的司机")
	ErrNoPendingOrders     = errors.New("没有待处理的订单")
	ErrInvalidParameters   = errors.New("模拟参数无效")
	// 快照中的订单在写回时已不再是待处理状态（被并发的另一次模拟处理了）
	ErrSnapshotStale = errors.New("订单状态已变更，请重新运行模拟")
)
