package recommend

import (
	"context"
	"errors"

	"github.com/seolens/seolens/internal/model"
)

// ErrDisabled is returned by Noop; callers treat it like any other
// best-effort recommendation failure.
var ErrDisabled = errors.New("recommend: disabled, no API key configured")

// Noop is the Recommender used when no API key is configured.
type Noop struct{}

// Recommend always reports that recommendations are disabled.
func (Noop) Recommend(context.Context, *model.ScanResult) (string, error) {
	return "", ErrDisabled
}
