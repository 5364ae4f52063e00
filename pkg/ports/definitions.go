package ports

import (
	"context"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

// LinkRepository defines storage operations for link records. Fetches return
// (nil, nil) for a missing record so callers can distinguish absence from a
// store failure.
type LinkRepository interface {
	Create(ctx context.Context, record *domain.LinkRecord) error
	GetByID(ctx context.Context, id string) (*domain.LinkRecord, error)
	Update(ctx context.Context, record *domain.LinkRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]domain.LinkRecord, error)
	Count(ctx context.Context) (int64, error)
	Dump(ctx context.Context) ([]domain.LinkRecord, error) // For migration

	// RecordScan atomically re-checks lifecycle and quota and increments the
	// scan counter. The outcome is authoritative over any previously fetched
	// copy of the record.
	RecordScan(ctx context.Context, id string, scan *domain.Scan) (domain.ScanOutcome, error)
}

// ResolverService runs the resolution pipeline for incoming visits.
// submitted marks a password submission attempt so the pipeline can tell a
// first visit apart from an empty submission.
type ResolverService interface {
	Resolve(ctx context.Context, id, password string, submitted bool, caps domain.Capabilities, scan *domain.Scan) (*domain.Resolution, error)
	ResolveInline(target string, caps domain.Capabilities) *domain.Resolution
	LookupRecord(ctx context.Context, id string) (*domain.LinkRecord, error)
	RecordScan(ctx context.Context, id string, scan *domain.Scan) (domain.ScanOutcome, error)
}

// LinkService defines the management operations that own record lifecycle.
type LinkService interface {
	CreateLink(ctx context.Context, record *domain.LinkRecord) (*domain.LinkRecord, error)
	GetLink(ctx context.Context, id string) (*domain.LinkRecord, error)
	UpdateLink(ctx context.Context, record *domain.LinkRecord) (*domain.LinkRecord, error)
	DeleteLink(ctx context.Context, id string) error
	ListLinks(ctx context.Context, page, limit int) ([]domain.LinkRecord, int64, error)
}
