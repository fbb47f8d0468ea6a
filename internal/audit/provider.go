package audit

import (
	"context"

	"github.com/seolens/seolens/internal/model"
)

// ScanProvider defines the contract for the scan pipeline.
type ScanProvider interface {
	Scan(ctx context.Context, rawURL string) (*model.ScanResult, error)
}

// ScanStore persists finished scans and accounts for quota usage. Both calls
// are best-effort from the service's point of view: a store failure is logged
// and never invalidates an already-computed scan.
type ScanStore interface {
	Save(ctx context.Context, record *model.ScanRecord) (string, error)
	IncrementScanQuota(ctx context.Context, userID string) error
}

// Recommender generates free-form advice text for a finished scan. It is
// optional: failure or unavailability never alters the scan's scores or
// issues.
type Recommender interface {
	Recommend(ctx context.Context, result *model.ScanResult) (string, error)
}
