package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/platform/errs"
)

// mockProvider implements ScanProvider for testing.
type mockProvider struct {
	result *model.ScanResult
	err    error
}

func (m *mockProvider) Scan(_ context.Context, _ string) (*model.ScanResult, error) {
	return m.result, m.err
}

// mockStore implements ScanStore for testing.
type mockStore struct {
	saveErr  error
	quotaErr error
	saved    []*model.ScanRecord
	quota    map[string]int
}

func (m *mockStore) Save(_ context.Context, record *model.ScanRecord) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.saved = append(m.saved, record)
	return "scan-1", nil
}

func (m *mockStore) IncrementScanQuota(_ context.Context, userID string) error {
	if m.quotaErr != nil {
		return m.quotaErr
	}
	if m.quota == nil {
		m.quota = make(map[string]int)
	}
	m.quota[userID]++
	return nil
}

// mockRecommender implements Recommender for testing.
type mockRecommender struct {
	text string
	err  error
}

func (m *mockRecommender) Recommend(_ context.Context, _ *model.ScanResult) (string, error) {
	return m.text, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleResult() *model.ScanResult {
	return &model.ScanResult{
		URL:    "https://example.com/",
		Domain: "example.com",
		Scores: model.ScoreBreakdown{Technical: 85, Content: 90, Performance: 100, Overall: 91},
		Issues: map[model.Severity][]model.Issue{
			model.SeverityCritical: {},
			model.SeverityHigh:     {{Severity: model.SeverityHigh, Message: "Page has no H1 heading"}},
			model.SeverityMedium:   {},
			model.SeverityLow:      {},
		},
		ScannedAt: time.Now().UTC(),
	}
}

func TestService_Scan_Success(t *testing.T) {
	store := &mockStore{}
	svc := NewService(
		&mockProvider{result: sampleResult()},
		store,
		&mockRecommender{text: "Add an H1 heading."},
		testLogger(),
	)

	record, err := svc.Scan(context.Background(), "user-7", "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.ID != "scan-1" {
		t.Errorf("ID = %q, want %q", record.ID, "scan-1")
	}
	if record.Recommendation != "Add an H1 heading." {
		t.Errorf("Recommendation = %q", record.Recommendation)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(store.saved))
	}
	if store.quota["user-7"] != 1 {
		t.Errorf("quota for user-7 = %d, want 1", store.quota["user-7"])
	}
}

func TestService_Scan_StoreFailureDoesNotFailScan(t *testing.T) {
	svc := NewService(
		&mockProvider{result: sampleResult()},
		&mockStore{saveErr: errors.New("store down"), quotaErr: errors.New("store down")},
		&mockRecommender{text: "advice"},
		testLogger(),
	)

	record, err := svc.Scan(context.Background(), "user-7", "example.com")
	if err != nil {
		t.Fatalf("scan failed because of the store: %v", err)
	}
	if record.ID != "" {
		t.Errorf("ID = %q, want empty when save failed", record.ID)
	}
	if record.Result.Scores.Overall != 91 {
		t.Errorf("Overall = %d, want 91 untouched", record.Result.Scores.Overall)
	}
}

func TestService_Scan_RecommenderFailureDoesNotAlterResult(t *testing.T) {
	result := sampleResult()
	svc := NewService(
		&mockProvider{result: result},
		&mockStore{},
		&mockRecommender{err: errors.New("model unavailable")},
		testLogger(),
	)

	record, err := svc.Scan(context.Background(), "", "example.com")
	if err != nil {
		t.Fatalf("scan failed because of the recommender: %v", err)
	}
	if record.Recommendation != "" {
		t.Errorf("Recommendation = %q, want empty", record.Recommendation)
	}
	if record.Result != result {
		t.Error("Result was replaced; scores and issues must pass through untouched")
	}
	if len(record.Result.Issues[model.SeverityHigh]) != 1 {
		t.Error("issues were mutated")
	}
}

func TestService_Scan_EmptyUserSkipsQuota(t *testing.T) {
	store := &mockStore{}
	svc := NewService(&mockProvider{result: sampleResult()}, store, nil, testLogger())

	if _, err := svc.Scan(context.Background(), "", "example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.quota) != 0 {
		t.Errorf("quota entries = %d, want 0 for anonymous scans", len(store.quota))
	}
}

func TestService_Scan_ProviderErrorPropagatesVerbatim(t *testing.T) {
	appErr := &errs.AppError{Kind: errs.NonSuccessStatus, UpstreamStatus: 404, Message: "not found"}
	store := &mockStore{}
	svc := NewService(&mockProvider{err: appErr}, store, &mockRecommender{}, testLogger())

	record, err := svc.Scan(context.Background(), "user-7", "https://example.com/missing")
	if record != nil {
		t.Fatalf("record = %+v, want nil", record)
	}
	if !errors.Is(err, appErr) {
		t.Errorf("error = %v, want the provider's error verbatim", err)
	}
	if len(store.saved) != 0 {
		t.Error("failed scan was saved")
	}
	if len(store.quota) != 0 {
		t.Error("failed scan consumed quota")
	}
}

func TestService_Scan_NilCollaborators(t *testing.T) {
	svc := NewService(&mockProvider{result: sampleResult()}, nil, nil, testLogger())

	record, err := svc.Scan(context.Background(), "user-7", "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Result == nil {
		t.Error("Result is nil")
	}
}
