package simulator

// hoursLedger 记录本次运行中每位司机累计的工作时长（小时），下标与司机列表一一对应
// 每次 Simulate 都会新建一个，不会在运行之间共享
type hoursLedger []float64

func newHoursLedger(n int) hoursLedger {
	return make(hoursLedger, n)
}

// nextAvailable 从 cursor 开始循环查找第一个未达到上限的司机，每个司机最多检查一次
func (l hoursLedger) nextAvailable(cursor int, maxHours float64) (int, bool) {
	n := len(l)
	for k := 0; k < n; k++ {
		i := (cursor + k) % n
		if l[i] < maxHours {
			return i, true
		}
	}
	return -1, false
}

func (l hoursLedger) add(i int, deliveryTimeMinutes int) {
	l[i] += float64(deliveryTimeMinutes) / 60
}

// Evaluation 是单个订单的财务结果，金额保持完整精度，只在汇总时取整
type Evaluation struct {
	IsLate   bool
	Penalty  float64
	Bonus    float64
	FuelCost float64
	Profit   float64
}
