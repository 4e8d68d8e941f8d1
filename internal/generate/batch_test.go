package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateN_Reproducible(t *testing.T) {
	gen := New(richGraph(), testConfig(), nil)

	a, err := gen.GenerateN(context.Background(), 20, 42, 4)
	require.NoError(t, err)
	b, err := gen.GenerateN(context.Background(), 20, 42, 1)
	require.NoError(t, err)

	require.Len(t, a, 20)
	assert.Equal(t, a, b, "output does not depend on the worker count")
	for _, r := range a {
		assert.NotEmpty(t, r.Text)
	}
}

func TestGenerateN_Canceled(t *testing.T) {
	gen := New(richGraph(), testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.GenerateN(ctx, 5, 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateN_NegativeCount(t *testing.T) {
	gen := New(richGraph(), testConfig(), nil)
	out, err := gen.GenerateN(context.Background(), -1, 1, 1)
	assert.ErrorContains(t, err, "must not be negative")
	assert.Nil(t, out)
}

func TestGenerateN_Zero(t *testing.T) {
	gen := New(richGraph(), testConfig(), nil)
	out, err := gen.GenerateN(context.Background(), 0, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}
