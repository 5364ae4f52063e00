package domain

import "time"

// ResolutionOutcome is the single terminal result of one resolution session.
type ResolutionOutcome string

const (
	OutcomeDirectRender     ResolutionOutcome = "direct_render"
	OutcomeExternalRedirect ResolutionOutcome = "external_redirect"
	OutcomePasswordRequired ResolutionOutcome = "password_required"
	OutcomeUnavailable      ResolutionOutcome = "unavailable"
)

// UnavailableReason addresses the distinct terminal pages. Each reason has
// its own user-facing message because the remedy differs per reason.
type UnavailableReason string

const (
	ReasonNotFound    UnavailableReason = "notfound"
	ReasonExpired     UnavailableReason = "expired"
	ReasonLimit       UnavailableReason = "limit"
	ReasonInactive    UnavailableReason = "inactive"
	ReasonUnavailable UnavailableReason = "unavailable"
)

// RedirectPlan is the executable half of an external resolution: which URI
// to try first on the visitor's platform, where to fall back, and how long
// to wait before falling back.
type RedirectPlan struct {
	Target        PlatformTarget `json:"target"`
	PrimaryURI    string         `json:"primary_uri"`
	FallbackURL   string         `json:"fallback_url"`
	FallbackDelay time.Duration  `json:"fallback_delay"`
	// Direct is set when the device has no app path worth trying and the
	// transport should issue a plain redirect to the fallback URL.
	Direct bool `json:"direct"`
}

// Resolution is the outcome document of one session: exactly one of View or
// Redirect is populated for the render/redirect outcomes.
type Resolution struct {
	Outcome ResolutionOutcome `json:"outcome"`
	Reason  UnavailableReason `json:"reason,omitempty"`
	View    *View             `json:"view,omitempty"`
	// PasswordError distinguishes local input validation ("invalid") from a
	// failed match ("incorrect") when the outcome is OutcomePasswordRequired.
	PasswordError string        `json:"password_error,omitempty"`
	Redirect      *RedirectPlan `json:"redirect,omitempty"`
	Branding      Branding      `json:"branding"`
	// Raw carries the record's payload on unavailable/error outcomes so the
	// visitor can copy it manually.
	Raw string `json:"raw,omitempty"`
}
