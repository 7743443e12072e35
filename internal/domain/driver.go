package domain

import "time"

// 疲劳阈值：最近一天的工作时长超过该值即视为疲劳
const FatigueThresholdHours = 8

type Driver struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Code               string     `json:"code"`
	CurrentShiftHours  float64    `json:"currentShiftHours"`
	Past7DaysWorkHours [7]float64 `json:"past7DaysWorkHours"` // 下标 6 为最近的一天
	IsActive           bool       `json:"isActive"`
	CreatedAt          time.Time  `json:"createdAt"`
	Version            int32      `json:"-"`
}

func (d *Driver) HasFatigue() bool {
	return d.Past7DaysWorkHours[6] > FatigueThresholdHours
}
