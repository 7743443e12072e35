package simulator

import "math"

// 四舍五入（.5 向上）
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func roundTo2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
