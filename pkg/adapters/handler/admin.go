package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
	"github.com/wadjakorntonsri/go-smartlink/pkg/ports"
)

// AdminHandler is the management API that owns record lifecycle. The
// resolver pipeline only ever reads what this surface creates.
type AdminHandler struct {
	service ports.LinkService
}

func NewAdminHandler(service ports.LinkService) *AdminHandler {
	return &AdminHandler{service: service}
}

// LinkRequest payload for create/update.
type LinkRequest struct {
	ID            string           `json:"id,omitempty"`
	ContentType   string           `json:"content_type,omitempty"`
	TargetContent string           `json:"target_content,omitempty"`
	Status        string           `json:"status,omitempty"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	Password      string           `json:"password,omitempty"`
	ScanLimit     int64            `json:"scan_limit,omitempty"`
	Branding      *domain.Branding `json:"branding,omitempty"`
}

func (req *LinkRequest) toRecord() *domain.LinkRecord {
	return &domain.LinkRecord{
		ID:            req.ID,
		ContentType:   domain.ContentType(req.ContentType),
		TargetContent: req.TargetContent,
		Status:        domain.LinkStatus(req.Status),
		ExpiresAt:     req.ExpiresAt,
		Password:      req.Password,
		ScanLimit:     req.ScanLimit,
		Branding:      req.Branding,
	}
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.service.CreateLink(r.Context(), req.toRecord())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(record)
}

func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetLink(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			http.Error(w, "Link not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(record)
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, count, err := h.service.ListLinks(r.Context(), page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"data":  records,
		"total": count,
		"page":  page,
		"limit": limit,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	req.ID = r.PathValue("id")

	record, err := h.service.UpdateLink(r.Context(), req.toRecord())
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			http.Error(w, "Link not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(record)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLink(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
