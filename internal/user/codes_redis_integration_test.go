//go:build integration

package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"safesound/internal/platform/redis"
	"safesound/internal/user"
	"safesound/pkg/testutil/containers"
)

func TestRedisCodeStore(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	codes := user.NewRedisCodeStore(&redis.Client{Client: rc.Client})
	ctx := t.Context()

	require.NoError(t, codes.SaveActivation(ctx, "code-1", "jane@example.com", time.Minute))

	email, err := codes.TakeActivation(ctx, "code-1")
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", email)

	_, err = codes.TakeActivation(ctx, "code-1")
	require.ErrorIs(t, err, user.ErrCodeNotFound)

	require.NoError(t, codes.SaveActivation(ctx, "code-2", "sam@example.com", 50*time.Millisecond))
	require.Eventually(t, func() bool {
		_, err := codes.TakeActivation(ctx, "code-2")
		return err != nil
	}, 5*time.Second, 100*time.Millisecond)
}
