package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/content"
	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
	"github.com/wadjakorntonsri/go-smartlink/pkg/core/platform"
	"github.com/wadjakorntonsri/go-smartlink/pkg/ports"
)

// ResolverService runs the full resolution pipeline for one visit:
// fetch -> access gate -> scan tracker -> classify -> view or redirect plan.
type ResolverService struct {
	repo          ports.LinkRepository
	fallbackDelay time.Duration
	now           func() time.Time
}

func NewResolverService(repo ports.LinkRepository, fallbackDelay time.Duration) *ResolverService {
	return &ResolverService{
		repo:          repo,
		fallbackDelay: fallbackDelay,
		now:           time.Now,
	}
}

// Resolve runs one session. submitted marks a password submission attempt:
// a first visit to a protected record yields OutcomePasswordRequired with no
// error, while a submitted password runs the verification transition, so an
// empty submission is a validation error rather than a fresh prompt. A
// non-nil error means the record fetch itself failed and nothing further can
// proceed.
//
// Exactly one scan is recorded per session that passes the gate; sessions
// that terminate in the gate record none.
func (s *ResolverService) Resolve(ctx context.Context, id, password string, submitted bool, caps domain.Capabilities, scan *domain.Scan) (*domain.Resolution, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch link %s: %w", id, err)
	}

	gate := NewAccessGate(record, s.now())
	if res := s.gateResolution(gate, record, password, submitted); res != nil {
		return res, nil
	}

	// The gate passed; the store's verdict at write time is authoritative
	// over the copy we fetched, since concurrent scans may have consumed the
	// quota or the record may have lapsed in between.
	outcome, err := s.repo.RecordScan(ctx, id, scan)
	if err != nil {
		// A failed tracking write must never block a legitimate visitor.
		log.Printf("scan record failed for %s: %v", id, err)
		outcome = domain.ScanFailed
	}
	if outcome.Rejected() {
		return &domain.Resolution{
			Outcome:  domain.OutcomeUnavailable,
			Reason:   rejectionReason(outcome),
			Branding: record.EffectiveBranding(),
			Raw:      record.TargetContent,
		}, nil
	}

	return s.deliver(record, caps), nil
}

// gateResolution maps a non-granted gate state to its terminal resolution,
// running the password transition on a submission attempt. It returns nil
// when the gate granted access.
func (s *ResolverService) gateResolution(gate *AccessGate, record *domain.LinkRecord, password string, submitted bool) *domain.Resolution {
	if gate.State() == StatePasswordRequired && submitted {
		if err := gate.SubmitPassword(password); err != nil {
			res := &domain.Resolution{
				Outcome:  domain.OutcomePasswordRequired,
				Branding: record.EffectiveBranding(),
			}
			if errors.Is(err, domain.ErrPasswordInvalid) {
				res.PasswordError = "invalid"
			} else {
				res.PasswordError = "incorrect"
			}
			return res
		}
	}

	switch gate.State() {
	case StateGranted:
		return nil
	case StateNotFound:
		return &domain.Resolution{
			Outcome:  domain.OutcomeUnavailable,
			Reason:   domain.ReasonNotFound,
			Branding: domain.DefaultBranding(),
		}
	case StateExpiredUnavailable:
		return &domain.Resolution{
			Outcome:  domain.OutcomeUnavailable,
			Reason:   domain.ReasonExpired,
			Branding: record.EffectiveBranding(),
			Raw:      record.TargetContent,
		}
	case StateInactiveUnavailable:
		return &domain.Resolution{
			Outcome:  domain.OutcomeUnavailable,
			Reason:   domain.ReasonInactive,
			Branding: record.EffectiveBranding(),
			Raw:      record.TargetContent,
		}
	default:
		return &domain.Resolution{
			Outcome:  domain.OutcomePasswordRequired,
			Branding: record.EffectiveBranding(),
		}
	}
}

// deliver classifies the granted record into a direct view or a redirect
// plan.
func (s *ResolverService) deliver(record *domain.LinkRecord, caps domain.Capabilities) *domain.Resolution {
	branding := record.EffectiveBranding()

	if content.Classify(record.ContentType) == content.RenderDirectly {
		view := content.BuildView(record, caps, branding)
		return &domain.Resolution{
			Outcome:  domain.OutcomeDirectRender,
			View:     &view,
			Branding: branding,
		}
	}

	target := platform.Resolve(record.TargetContent)
	plan := s.buildPlan(target, caps)
	return &domain.Resolution{
		Outcome:  domain.OutcomeExternalRedirect,
		Redirect: &plan,
		Branding: branding,
	}
}

// ResolveInline handles the identifier-less mode: an inline encoded target
// bypasses the record lookup, the gate, and the scan tracker entirely.
func (s *ResolverService) ResolveInline(target string, caps domain.Capabilities) *domain.Resolution {
	plan := s.buildPlan(platform.Resolve(target), caps)
	return &domain.Resolution{
		Outcome:  domain.OutcomeExternalRedirect,
		Redirect: &plan,
		Branding: domain.DefaultBranding(),
	}
}

// buildPlan picks the first URI to try on the visitor's platform. Desktop
// and app-less targets go straight to the web URL.
func (s *ResolverService) buildPlan(target domain.PlatformTarget, caps domain.Capabilities) domain.RedirectPlan {
	plan := domain.RedirectPlan{
		Target:        target,
		FallbackURL:   target.WebURL,
		FallbackDelay: s.fallbackDelay,
	}
	switch {
	case !caps.IsMobile || !target.HasNativeApp():
		plan.PrimaryURI = target.WebURL
		plan.Direct = true
	case caps.IsAndroid && target.AndroidIntentURI != "":
		plan.PrimaryURI = target.AndroidIntentURI
	case target.NativeAppURI != "":
		plan.PrimaryURI = target.NativeAppURI
	default:
		plan.PrimaryURI = target.WebURL
		plan.Direct = true
	}
	return plan
}

// LookupRecord serves the record-lookup boundary.
func (s *ResolverService) LookupRecord(ctx context.Context, id string) (*domain.LinkRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrLinkNotFound
	}
	return record, nil
}

// RecordScan serves the scan-recording boundary directly.
func (s *ResolverService) RecordScan(ctx context.Context, id string, scan *domain.Scan) (domain.ScanOutcome, error) {
	return s.repo.RecordScan(ctx, id, scan)
}

func rejectionReason(outcome domain.ScanOutcome) domain.UnavailableReason {
	switch outcome {
	case domain.ScanRejectedExpired:
		return domain.ReasonExpired
	case domain.ScanRejectedLimitReached:
		return domain.ReasonLimit
	case domain.ScanRejectedInactive:
		return domain.ReasonInactive
	}
	return domain.ReasonUnavailable
}
