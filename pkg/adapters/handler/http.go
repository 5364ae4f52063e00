package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
	"github.com/wadjakorntonsri/go-smartlink/pkg/ports"
)

// ResolveHandler serves the visitor-facing resolution surface.
type ResolveHandler struct {
	resolver    ports.ResolverService
	settleDelay time.Duration
}

func NewResolveHandler(resolver ports.ResolverService, settleDelay time.Duration) *ResolveHandler {
	return &ResolveHandler{resolver: resolver, settleDelay: settleDelay}
}

// Resolve handles GET /open/{id}: the full pipeline with no password.
// Protected records come back as a password prompt; the visitor retries via
// PasswordSubmit.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Identifier missing", http.StatusBadRequest)
		return
	}
	h.runSession(w, r, id, "", false)
}

// PasswordSubmit handles POST /open/{id}/password. A wrong password is
// recovered locally (re-prompt) and never recorded as a scan; the service
// guarantees that.
func (h *ResolveHandler) PasswordSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Identifier missing", http.StatusBadRequest)
		return
	}
	password := r.PostFormValue("password")
	if password == "" {
		var body struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		password = body.Password
	}
	h.runSession(w, r, id, password, true)
}

func (h *ResolveHandler) runSession(w http.ResponseWriter, r *http.Request, id, password string, submitted bool) {
	caps := DetectCapabilities(r)
	scan := &domain.Scan{
		LinkID:    id,
		UserAgent: r.UserAgent(),
		Referer:   r.Header.Get("Referer"),
	}

	res, err := h.resolver.Resolve(r.Context(), id, password, submitted, caps, scan)
	if err != nil {
		// Without the record nothing else in the pipeline can proceed.
		log.Printf("resolution failed for %s: %v", id, err)
		h.renderUnavailable(w, r, id, domain.ReasonUnavailable, domain.DefaultBranding())
		return
	}

	switch res.Outcome {
	case domain.OutcomePasswordRequired:
		h.renderPasswordPrompt(w, r, id, res)
	case domain.OutcomeUnavailable:
		http.Redirect(w, r, "/unavailable/"+url.PathEscape(id)+"?reason="+string(res.Reason), http.StatusFound)
	case domain.OutcomeDirectRender:
		h.renderView(w, r, res)
	case domain.OutcomeExternalRedirect:
		h.renderRedirect(w, r, res)
	default:
		h.renderUnavailable(w, r, id, domain.ReasonUnavailable, res.Branding)
	}
}

// InlineRedirect handles GET /open?target=<pct-encoded URL>: no identifier,
// no record lookup, no gate, no scan. Straight to platform resolution.
// Query().Get has already decoded the parameter once; decoding again would
// mangle targets whose own query strings carry escapes.
func (h *ResolveHandler) InlineRedirect(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		http.Error(w, "Target missing", http.StatusBadRequest)
		return
	}

	res := h.resolver.ResolveInline(target, DetectCapabilities(r))
	h.renderRedirect(w, r, res)
}

// Lookup handles GET /links/{id}: the record-lookup boundary. The stored
// password is never serialized out; only its presence is.
func (h *ResolveHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	record, err := h.resolver.LookupRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			http.Error(w, "Link not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"id":                record.ID,
		"contentType":       record.ContentType,
		"targetContent":     record.TargetContent,
		"status":            record.Status,
		"passwordProtected": record.PasswordProtected(),
	}
	if record.ExpiresAt != nil {
		resp["expirationTimestamp"] = record.ExpiresAt.UTC().Format(time.RFC3339)
	}
	if record.Branding != nil {
		resp["ownerBrandingConfig"] = record.Branding
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// Scan handles POST /links/{id}/scan: the scan-recording boundary with its
// structured rejection reasons.
func (h *ResolveHandler) Scan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	scan := &domain.Scan{
		LinkID:    id,
		UserAgent: r.UserAgent(),
		Referer:   r.Header.Get("Referer"),
	}

	outcome, err := h.resolver.RecordScan(r.Context(), id, scan)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			http.Error(w, "Link not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch outcome {
	case domain.ScanRecorded:
		_ = json.NewEncoder(w).Encode(map[string]string{"outcome": "recorded"})
	case domain.ScanRejectedExpired, domain.ScanRejectedLimitReached, domain.ScanRejectedInactive:
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"outcome": "rejected",
			"reason":  string(rejectionReasonCode(outcome)),
		})
	default:
		http.Error(w, "scan recording failed", http.StatusInternalServerError)
	}
}

// Unavailable handles GET /unavailable/{id}?reason=: the terminal pages,
// one distinct title/message per reason. Branding is applied best-effort;
// the page must render even when the record cannot be fetched.
func (h *ResolveHandler) Unavailable(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	reason := domain.UnavailableReason(r.URL.Query().Get("reason"))
	switch reason {
	case domain.ReasonExpired, domain.ReasonLimit, domain.ReasonInactive, domain.ReasonNotFound:
	default:
		reason = domain.ReasonUnavailable
	}

	branding := domain.DefaultBranding()
	if record, err := h.resolver.LookupRecord(r.Context(), id); err == nil {
		branding = record.EffectiveBranding()
	}
	h.renderUnavailable(w, r, id, reason, branding)
}

func rejectionReasonCode(outcome domain.ScanOutcome) domain.UnavailableReason {
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

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
