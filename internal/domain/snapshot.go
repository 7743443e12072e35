package domain

// Snapshot 是一次模拟运行所读取的只读数据集
type Snapshot struct {
	Drivers []*Driver
	Routes  []*Route
	Orders  []*Order // 每个订单的 Route 均已填充
}
