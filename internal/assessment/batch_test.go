package assessment

import (
	"context"
	"testing"

	"github.com/jonathan/risk-router/internal/registry"
	"github.com/jonathan/risk-router/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictAll_KeepsOrder(t *testing.T) {
	svc := newService(registry.New(healthy(types.ModelDiabetes, 0.9), healthy(types.ModelCardiac, 0.1)))

	vectors := make([]types.FeatureVector, 0, 20)
	for i := 0; i < 10; i++ {
		vectors = append(vectors,
			types.FeatureVector{"age": 50, "sugar_trend_up": 1},
			types.FeatureVector{"age": 50, "bp_trend_up": 1},
		)
	}

	results, err := svc.PredictAll(context.Background(), vectors, 4)
	require.NoError(t, err)
	require.Len(t, results, len(vectors))

	for i, a := range results {
		if i%2 == 0 {
			assert.Equal(t, types.ModelDiabetes, a.ModelUsed)
		} else {
			assert.Equal(t, types.ModelCardiac, a.ModelUsed)
		}
	}
}

func TestPredictAll_Cancelled(t *testing.T) {
	svc := newService(registry.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PredictAll(ctx, []types.FeatureVector{{"age": 40}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
