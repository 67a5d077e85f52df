package assessment

import (
	"context"

	"github.com/jonathan/risk-router/internal/types"
	"golang.org/x/sync/errgroup"
)

// PredictAll scores every vector with at most concurrency workers. Results keep
// input order. It stops early only when ctx is cancelled.
func (s *Service) PredictAll(ctx context.Context, vectors []types.FeatureVector, concurrency int) ([]types.RiskAssessment, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]types.RiskAssessment, len(vectors))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, fv := range vectors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Predict(ctx, fv)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
