package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
	"github.com/wadjakorntonsri/go-smartlink/pkg/ports"
)

// LinkService owns record lifecycle for the management API. The resolver
// only ever reads records; creation and mutation happen here.
type LinkService struct {
	repo ports.LinkRepository
}

func NewLinkService(repo ports.LinkRepository) *LinkService {
	return &LinkService{repo: repo}
}

func (s *LinkService) CreateLink(ctx context.Context, record *domain.LinkRecord) (*domain.LinkRecord, error) {
	if record.TargetContent == "" {
		return nil, errors.New("target content is required")
	}
	if record.ContentType == "" {
		record.ContentType = domain.TypeURL
	}
	if record.Status == "" {
		record.Status = domain.StatusActive
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	} else {
		existing, _ := s.repo.GetByID(ctx, record.ID)
		if existing != nil {
			return nil, errors.New("identifier already exists")
		}
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *LinkService) GetLink(ctx context.Context, id string) (*domain.LinkRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrLinkNotFound
	}
	return record, nil
}

func (s *LinkService) UpdateLink(ctx context.Context, update *domain.LinkRecord) (*domain.LinkRecord, error) {
	record, err := s.GetLink(ctx, update.ID)
	if err != nil {
		return nil, err
	}

	// Naive partial update: empty fields keep their stored values.
	if update.ContentType != "" {
		record.ContentType = update.ContentType
	}
	if update.TargetContent != "" {
		record.TargetContent = update.TargetContent
	}
	if update.Status != "" {
		record.Status = update.Status
	}
	if update.ExpiresAt != nil {
		record.ExpiresAt = update.ExpiresAt
	}
	if update.Password != "" {
		record.Password = update.Password
	}
	if update.ScanLimit != 0 {
		record.ScanLimit = update.ScanLimit
	}
	if update.Branding != nil {
		record.Branding = update.Branding
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *LinkService) DeleteLink(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *LinkService) ListLinks(ctx context.Context, page, limit int) ([]domain.LinkRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	records, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return records, count, nil
}
