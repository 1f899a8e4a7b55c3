package substrate_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ndaedxo/Social-Media-Platform/internal/substrate"
)

func backends(t *testing.T) map[string]substrate.Substrate {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	kv, err := substrate.NewGormKV(db)
	require.NoError(t, err)

	return map[string]substrate.Substrate{
		"memory": substrate.NewMemory(),
		"redis":  substrate.NewRedis(rdb),
		"sqlite": kv,
	}
}

func TestRoundtrip(t *testing.T) {
	ctx := context.Background()
	for name, sub := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, sub.Set(ctx, substrate.KeyPosts, []byte(`[{"id":"p1"}]`)))
			got, err := sub.Get(ctx, substrate.KeyPosts)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[{"id":"p1"}]`), got)

			// full rewrite replaces the slot
			require.NoError(t, sub.Set(ctx, substrate.KeyPosts, []byte(`[]`)))
			got, err = sub.Get(ctx, substrate.KeyPosts)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[]`), got)
		})
	}
}

func TestMissingKey(t *testing.T) {
	ctx := context.Background()
	for name, sub := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := sub.Get(ctx, "nope")
			assert.ErrorIs(t, err, substrate.ErrNotFound)
		})
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	for name, sub := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, sub.Set(ctx, substrate.KeyCurrentUser, []byte(`{"id":"u1"}`)))
			require.NoError(t, sub.Remove(ctx, substrate.KeyCurrentUser))
			_, err := sub.Get(ctx, substrate.KeyCurrentUser)
			assert.ErrorIs(t, err, substrate.ErrNotFound)

			// removing an absent key is fine
			require.NoError(t, sub.Remove(ctx, substrate.KeyCurrentUser))
		})
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, sub := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, sub.Set(ctx, substrate.KeyUsers, []byte(`[]`)))
			require.NoError(t, sub.Set(ctx, substrate.KeyPosts, []byte(`[1]`)))
			require.NoError(t, sub.Remove(ctx, substrate.KeyUsers))

			got, err := sub.Get(ctx, substrate.KeyPosts)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[1]`), got)
		})
	}
}
