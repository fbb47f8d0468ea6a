package audit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/platform/errs"
	"github.com/seolens/seolens/internal/platform/requestid"
)

// Service runs scans and coordinates the external collaborators. The scan
// outcome is decided by the provider alone; persistence and recommendation
// failures are logged, never propagated into the scan result.
type Service struct {
	provider    ScanProvider
	store       ScanStore
	recommender Recommender
	logger      *slog.Logger
}

// NewService creates a Service. Store and recommender may be nil when the
// caller does not want persistence or AI advice.
func NewService(provider ScanProvider, store ScanStore, recommender Recommender, logger *slog.Logger) *Service {
	return &Service{
		provider:    provider,
		store:       store,
		recommender: recommender,
		logger:      logger,
	}
}

// Scan runs the pipeline for rawURL on behalf of userID and returns the
// caller-owned record: the stored id plus the immutable ScanResult and the
// optional recommendation text. An empty userID skips quota accounting.
func (s *Service) Scan(ctx context.Context, userID, rawURL string) (*model.ScanRecord, error) {
	logger := s.logger.With("url", rawURL, "request_id", requestid.FromContext(ctx))

	result, err := s.provider.Scan(ctx, rawURL)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "The scan timed out. The target URL may be slow to respond.",
				Cause:   err,
			}
		}

		attrs := []any{"error", err}
		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			attrs = append(attrs, "kind", appErr.Kind.String())
			if appErr.UpstreamStatus != 0 {
				attrs = append(attrs, "target_status", appErr.UpstreamStatus)
			}
		}
		logger.Error("scan failed", attrs...)
		return nil, err
	}

	record := &model.ScanRecord{Result: result}

	if s.recommender != nil {
		if text, err := s.recommender.Recommend(ctx, result); err != nil {
			logger.Warn("recommendation unavailable", "error", err)
		} else {
			record.Recommendation = text
		}
	}

	if s.store != nil {
		id, err := s.store.Save(ctx, record)
		if err != nil {
			logger.Error("saving scan failed", "error", err)
		} else {
			record.ID = id
		}

		if userID != "" {
			if err := s.store.IncrementScanQuota(ctx, userID); err != nil {
				logger.Error("quota increment failed", "user_id", userID, "error", err)
			}
		}
	}

	logger.Info("scan complete",
		"domain", result.Domain,
		"overall_score", result.Scores.Overall,
		"technical_score", result.Scores.Technical,
		"content_score", result.Scores.Content,
		"performance_score", result.Scores.Performance,
		"issue_count", result.IssueCount(),
	)
	return record, nil
}
