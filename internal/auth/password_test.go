package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/expense-service/internal/auth"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := auth.NewBcryptHasher(4) // min cost keeps the test fast

	digest, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotContains(t, digest, "s3cret")

	assert.True(t, hasher.Verify("s3cret", digest))
	assert.False(t, hasher.Verify("wrong", digest))
}

func TestBcryptHasherDistinctDigests(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)

	first, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	second, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	// salted hashes never repeat
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("s3cret", first))
	assert.True(t, hasher.Verify("s3cret", second))
}

func TestBcryptHasherCostFallback(t *testing.T) {
	hasher := auth.NewBcryptHasher(99)

	digest, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("s3cret", digest))
}
