package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/ftechlab/playauth"
)

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()

	_, ok := auth.IdentityFromContext(ctx)
	assert.False(t, ok)

	identity := auth.Identity{ID: 9, Name: "sam"}
	ctx = auth.WithIdentity(ctx, identity)

	got, ok := auth.IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, identity, got)

	// A string key of the same name must not collide with the typed key.
	leaky := context.WithValue(context.Background(), "identity", auth.Identity{ID: 1}) //nolint:staticcheck
	_, ok = auth.IdentityFromContext(leaky)
	assert.False(t, ok)
}
