package services

import (
	"strings"
	"time"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

// GateState is one state of the access-control machine run per session.
type GateState int

const (
	StateFetching GateState = iota
	StatePasswordRequired
	StateVerifying
	StateGranted
	StateDenied
	StateNotFound
	StateExpiredUnavailable
	StateInactiveUnavailable
	StateLimitUnavailable
)

const maxPasswordLen = 128

// AccessGate decides whether a fetched record may be delivered. Lifecycle
// checks run before the password prompt: a prompt discloses that content
// exists, and an expired or inactive link can never be delivered no matter
// the password.
type AccessGate struct {
	record *domain.LinkRecord
	state  GateState
}

// NewAccessGate evaluates the fetch transition for a record. A nil record
// lands in StateNotFound.
func NewAccessGate(record *domain.LinkRecord, now time.Time) *AccessGate {
	g := &AccessGate{record: record}
	switch {
	case record == nil:
		g.state = StateNotFound
	case record.Expired(now):
		g.state = StateExpiredUnavailable
	case record.Status == domain.StatusInactive:
		g.state = StateInactiveUnavailable
	case record.PasswordProtected():
		g.state = StatePasswordRequired
	default:
		g.state = StateGranted
	}
	return g
}

// State returns the current gate state.
func (g *AccessGate) State() GateState {
	return g.state
}

// Granted reports whether delivery may proceed.
func (g *AccessGate) Granted() bool {
	return g.state == StateGranted
}

// SubmitPassword runs the verification transition. Validation failures and
// mismatches leave the gate in StatePasswordRequired so the visitor can
// retry; neither counts as a scan.
func (g *AccessGate) SubmitPassword(input string) error {
	if g.state != StatePasswordRequired {
		return nil
	}
	input = strings.TrimSpace(input)
	if input == "" || len(input) > maxPasswordLen {
		return domain.ErrPasswordInvalid
	}
	g.state = StateVerifying
	if input != g.record.Password {
		g.state = StatePasswordRequired
		return domain.ErrPasswordIncorrect
	}
	g.state = StateGranted
	return nil
}
