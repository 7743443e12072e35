package domain

import "time"

type TrafficLevel string

const (
	TrafficLevelLow    TrafficLevel = "Low"
	TrafficLevelMedium TrafficLevel = "Medium"
	TrafficLevelHigh   TrafficLevel = "High"
)

var TrafficLevels = []TrafficLevel{TrafficLevelLow, TrafficLevelMedium, TrafficLevelHigh}

type Route struct {
	ID              int64        `json:"id"`
	Code            string       `json:"code"`
	DistanceKm      float64      `json:"distanceKm"`
	TrafficLevel    TrafficLevel `json:"trafficLevel"`
	BaseTimeMinutes float64      `json:"baseTimeMinutes"`
	Description     string       `json:"description"`
	IsActive        bool         `json:"isActive"`
	CreatedAt       time.Time    `json:"createdAt"`
	Version         int32        `json:"-"`
}
