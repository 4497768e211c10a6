package domain

import "time"

// StatusRecord is the persisted state for one monitored URL.
// LastReportDate is nil until a notification has been attempted for the
// URL; it gates repeat notifications.
type StatusRecord struct {
	URL            string     `json:"url"`
	IsUp           bool       `json:"isUp"`
	LastCheckDate  time.Time  `json:"lastCheckDate"`
	LastReportDate *time.Time `json:"lastReportDate,omitempty"`
}
