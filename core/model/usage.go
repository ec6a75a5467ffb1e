package model

// DateLayout is the canonical calendar-date representation used across
// usage logs, forecasts and the HTTP contract.
const DateLayout = "2006-01-02"

// UsageRecord is a single appliance usage event from the household log.
// Time fields carry the source's recorded values verbatim.
type UsageRecord struct {
	Date      string  `json:"date"`
	Appliance string  `json:"appliance"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	KWh       float64 `json:"kwh"`
}

// Snapshot holds every usage record for the most recent logged day.
type Snapshot struct {
	Date    string        `json:"date"`
	Records []UsageRecord `json:"usage"`
}
