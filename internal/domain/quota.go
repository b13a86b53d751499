package domain

import "time"

// DateLayout is the key format of the persisted quota record
const DateLayout = "2006-01-02"

// QuotaRecord maps a calendar date to the number of execution calls made on it
type QuotaRecord map[string]int

// QuotaUsage describes today's execution budget
type QuotaUsage struct {
	Date      string `json:"date"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}

// NewQuotaUsage builds a usage snapshot, clamping remaining at zero
func NewQuotaUsage(date string, used, limit int) QuotaUsage {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return QuotaUsage{
		Date:      date,
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
	}
}

func (u QuotaUsage) Exhausted() bool {
	return u.Used >= u.Limit
}

// DateKey formats t as a quota record key using t's own location
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// QuotaDecision is the outcome of a single consumption attempt
type QuotaDecision string

const (
	QuotaAllowed  QuotaDecision = "allowed"
	QuotaDenied   QuotaDecision = "denied"
	QuotaFailOpen QuotaDecision = "fail_open"
)

type QuotaTable struct {
	Day  string
	Used string
}

func GetQuotaTable() QuotaTable {
	return QuotaTable{
		Day:  "day",
		Used: "used",
	}
}

func (QuotaTable) TableName() string {
	return "jdoodle_quota"
}
