package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

// fakeRepo implements ports.LinkRepository in memory for pipeline tests.
type fakeRepo struct {
	records     map[string]*domain.LinkRecord
	fetchErr    error
	scanErr     error
	scanOutcome domain.ScanOutcome
	scanCalls   int
}

func newFakeRepo(records ...*domain.LinkRecord) *fakeRepo {
	r := &fakeRepo{records: map[string]*domain.LinkRecord{}, scanOutcome: domain.ScanRecorded}
	for _, rec := range records {
		r.records[rec.ID] = rec
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, record *domain.LinkRecord) error {
	r.records[record.ID] = record
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*domain.LinkRecord, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.records[id], nil
}

func (r *fakeRepo) Update(ctx context.Context, record *domain.LinkRecord) error { return nil }
func (r *fakeRepo) Delete(ctx context.Context, id string) error                 { return nil }

func (r *fakeRepo) List(ctx context.Context, limit, offset int) ([]domain.LinkRecord, error) {
	return nil, nil
}
func (r *fakeRepo) Count(ctx context.Context) (int64, error)              { return 0, nil }
func (r *fakeRepo) Dump(ctx context.Context) ([]domain.LinkRecord, error) { return nil, nil }

func (r *fakeRepo) RecordScan(ctx context.Context, id string, scan *domain.Scan) (domain.ScanOutcome, error) {
	r.scanCalls++
	if r.scanErr != nil {
		return domain.ScanFailed, r.scanErr
	}
	return r.scanOutcome, nil
}

func activeURLRecord(id, target string) *domain.LinkRecord {
	return &domain.LinkRecord{
		ID:            id,
		ContentType:   domain.TypeURL,
		TargetContent: target,
		Status:        domain.StatusActive,
	}
}

func newTestResolver(repo *fakeRepo) *ResolverService {
	return NewResolverService(repo, 1500*time.Millisecond)
}

func TestResolve_ExternalRedirect(t *testing.T) {
	repo := newFakeRepo(activeURLRecord("a1", "https://youtu.be/abc123"))
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "a1", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeExternalRedirect, res.Outcome)
	require.NotNil(t, res.Redirect)
	assert.Equal(t, "YouTube", res.Redirect.Target.PlatformLabel)
	// Desktop goes straight to the web URL.
	assert.True(t, res.Redirect.Direct)
	assert.Equal(t, "https://youtu.be/abc123", res.Redirect.FallbackURL)
	assert.Equal(t, 1, repo.scanCalls)
}

func TestResolve_MobilePrefersNativeApp(t *testing.T) {
	repo := newFakeRepo(activeURLRecord("a1", "https://youtu.be/abc123"))
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "a1", "", false,
		domain.Capabilities{IsMobile: true}, &domain.Scan{})
	require.NoError(t, err)
	plan := res.Redirect
	require.NotNil(t, plan)
	assert.False(t, plan.Direct)
	assert.Equal(t, "vnd.youtube://abc123", plan.PrimaryURI)
	assert.Equal(t, 1500*time.Millisecond, plan.FallbackDelay)
}

func TestResolve_AndroidPrefersIntentURI(t *testing.T) {
	repo := newFakeRepo(activeURLRecord("a1", "https://youtu.be/abc123"))
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "a1", "", false,
		domain.Capabilities{IsMobile: true, IsAndroid: true}, &domain.Scan{})
	require.NoError(t, err)
	assert.Contains(t, res.Redirect.PrimaryURI, "intent://")
}

func TestResolve_DirectRenderSkipsRedirect(t *testing.T) {
	record := &domain.LinkRecord{
		ID:            "w1",
		ContentType:   domain.TypeWifi,
		TargetContent: "WIFI:T:WPA;S:HomeNet;P:secret99;",
		Status:        domain.StatusActive,
	}
	repo := newFakeRepo(record)
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "w1", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDirectRender, res.Outcome)
	require.NotNil(t, res.View)
	assert.Equal(t, "wifi", res.View.Kind)
	assert.Nil(t, res.Redirect)
	assert.Equal(t, 1, repo.scanCalls)
}

func TestResolve_NotFound(t *testing.T) {
	repo := newFakeRepo()
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "missing", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnavailable, res.Outcome)
	assert.Equal(t, domain.ReasonNotFound, res.Reason)
	assert.Zero(t, repo.scanCalls)
}

func TestResolve_FetchFailureIsFatal(t *testing.T) {
	repo := newFakeRepo()
	repo.fetchErr = errors.New("connection refused")
	resolver := newTestResolver(repo)

	_, err := resolver.Resolve(context.Background(), "a1", "", false, domain.Capabilities{}, &domain.Scan{})
	assert.Error(t, err)
	assert.Zero(t, repo.scanCalls)
}

func TestResolve_ExpiredTerminatesWithoutScan(t *testing.T) {
	record := activeURLRecord("e1", "https://example.com")
	past := time.Now().Add(-time.Minute)
	record.ExpiresAt = &past
	record.Password = "abc123" // must not be prompted for
	repo := newFakeRepo(record)
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "e1", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnavailable, res.Outcome)
	assert.Equal(t, domain.ReasonExpired, res.Reason)
	assert.Zero(t, repo.scanCalls)
}

func TestResolve_PasswordFlow(t *testing.T) {
	record := activeURLRecord("p1", "https://example.com")
	record.Password = "abc123"
	repo := newFakeRepo(record)
	resolver := newTestResolver(repo)
	ctx := context.Background()

	// First visit: prompt, no scan.
	res, err := resolver.Resolve(ctx, "p1", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePasswordRequired, res.Outcome)
	assert.Empty(t, res.PasswordError)
	assert.Zero(t, repo.scanCalls)

	// Wrong password: re-prompt, still no scan.
	res, err = resolver.Resolve(ctx, "p1", "wrong", true, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePasswordRequired, res.Outcome)
	assert.Equal(t, "incorrect", res.PasswordError)
	assert.Zero(t, repo.scanCalls)

	// Correct password: granted, exactly one scan.
	res, err = resolver.Resolve(ctx, "p1", "abc123", true, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeExternalRedirect, res.Outcome)
	assert.Equal(t, 1, repo.scanCalls)
}

func TestResolve_EmptyPasswordSubmissionIsInvalid(t *testing.T) {
	record := activeURLRecord("p2", "https://example.com")
	record.Password = "abc123"
	repo := newFakeRepo(record)
	resolver := newTestResolver(repo)

	// An empty submission is not a fresh visit: the validation error must
	// surface so the prompt can say what went wrong.
	res, err := resolver.Resolve(context.Background(), "p2", "", true, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePasswordRequired, res.Outcome)
	assert.Equal(t, "invalid", res.PasswordError)
	assert.Zero(t, repo.scanCalls)
}

func TestResolve_UnavailableCarriesRawPayload(t *testing.T) {
	record := activeURLRecord("r1", "https://example.com/payload")
	past := time.Now().Add(-time.Minute)
	record.ExpiresAt = &past
	repo := newFakeRepo(record)
	resolver := newTestResolver(repo)

	// The payload rides along on terminal outcomes for manual copy.
	res, err := resolver.Resolve(context.Background(), "r1", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnavailable, res.Outcome)
	assert.Equal(t, "https://example.com/payload", res.Raw)

	// The same applies when the store rejects the scan.
	repo2 := newFakeRepo(activeURLRecord("r2", "https://example.com/other"))
	repo2.scanOutcome = domain.ScanRejectedLimitReached
	resolver2 := newTestResolver(repo2)
	res, err = resolver2.Resolve(context.Background(), "r2", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/other", res.Raw)
}

func TestResolve_ScanRejectionOverridesGrant(t *testing.T) {
	repo := newFakeRepo(activeURLRecord("q1", "https://example.com"))
	repo.scanOutcome = domain.ScanRejectedLimitReached
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "q1", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnavailable, res.Outcome)
	assert.Equal(t, domain.ReasonLimit, res.Reason)
	assert.Nil(t, res.Redirect)
}

func TestResolve_ScanFailureIsNonFatal(t *testing.T) {
	repo := newFakeRepo(activeURLRecord("f1", "https://example.com"))
	repo.scanErr = errors.New("store unavailable")
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "f1", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	// A failed tracking write never blocks the visitor.
	assert.Equal(t, domain.OutcomeExternalRedirect, res.Outcome)
}

func TestResolve_BrandingPropagates(t *testing.T) {
	record := activeURLRecord("b1", "https://example.com")
	record.Branding = &domain.Branding{Enabled: true, BrandName: "Acme", LoadingText: "Hold on"}
	record.Password = "pw"
	repo := newFakeRepo(record)
	resolver := newTestResolver(repo)

	res, err := resolver.Resolve(context.Background(), "b1", "", false, domain.Capabilities{}, &domain.Scan{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePasswordRequired, res.Outcome)
	assert.Equal(t, "Acme", res.Branding.BrandName)
}

func TestResolveInline_BypassesGateAndScan(t *testing.T) {
	repo := newFakeRepo()
	resolver := newTestResolver(repo)

	res := resolver.ResolveInline("https://t.me/gophers", domain.Capabilities{IsMobile: true})
	assert.Equal(t, domain.OutcomeExternalRedirect, res.Outcome)
	assert.Equal(t, "Telegram", res.Redirect.Target.PlatformLabel)
	assert.Equal(t, "tg://resolve?domain=gophers", res.Redirect.PrimaryURI)
	assert.Zero(t, repo.scanCalls)
}
