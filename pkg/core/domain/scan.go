package domain

import "time"

// ScanOutcome is the record store's verdict on a scan-increment request.
// The store re-checks lifecycle and quota at write time, so a rejection here
// is authoritative even when the fetched record looked fine.
type ScanOutcome string

const (
	ScanRecorded             ScanOutcome = "recorded"
	ScanRejectedExpired      ScanOutcome = "rejected_expired"
	ScanRejectedLimitReached ScanOutcome = "rejected_limit"
	ScanRejectedInactive     ScanOutcome = "rejected_inactive"
	ScanFailed               ScanOutcome = "failed"
)

// Rejected reports whether the outcome must terminate the session.
// ScanFailed is deliberately not a rejection: a tracking write that failed
// must never deny a visitor access to their content.
func (o ScanOutcome) Rejected() bool {
	switch o {
	case ScanRejectedExpired, ScanRejectedLimitReached, ScanRejectedInactive:
		return true
	}
	return false
}

// Scan is one recorded visit against a link record.
type Scan struct {
	ID        int64     `json:"id"`
	LinkID    string    `json:"link_id"`
	UserAgent string    `json:"user_agent"`
	Referer   string    `json:"referer"`
	CreatedAt time.Time `json:"created_at"`
}
