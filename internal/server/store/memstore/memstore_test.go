package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/upcheck/internal/server/store"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Create(ctx, "users", "a", record{Name: "alice", Count: 1}))

	var got record
	require.NoError(t, s.Read(ctx, "users", "a", &got))
	assert.Equal(t, record{Name: "alice", Count: 1}, got)

	require.NoError(t, s.Update(ctx, "users", "a", record{Name: "alice", Count: 2}))
	require.NoError(t, s.Read(ctx, "users", "a", &got))
	assert.Equal(t, 2, got.Count)

	require.NoError(t, s.Delete(ctx, "users", "a"))
	require.ErrorIs(t, s.Read(ctx, "users", "a", &got), store.ErrNotFound)
}

func TestMemStore_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Create(ctx, "users", "a", record{}))
	require.ErrorIs(t, s.Create(ctx, "users", "a", record{}), store.ErrAlreadyExists)
}

func TestMemStore_MissingRecordErrors(t *testing.T) {
	ctx := context.Background()
	s := New()

	var got record
	require.ErrorIs(t, s.Read(ctx, "users", "nope", &got), store.ErrNotFound)
	require.ErrorIs(t, s.Update(ctx, "users", "nope", record{}), store.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "users", "nope"), store.ErrNotFound)
}

func TestMemStore_CollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Create(ctx, "users", "a", record{Name: "user"}))
	require.NoError(t, s.Create(ctx, "tokens", "a", record{Name: "token"}))

	var got record
	require.NoError(t, s.Read(ctx, "tokens", "a", &got))
	assert.Equal(t, "token", got.Name)
}

func TestMemStore_ReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Create(ctx, "users", "a", record{Count: 1}))

	var first record
	require.NoError(t, s.Read(ctx, "users", "a", &first))
	first.Count = 99

	var second record
	require.NoError(t, s.Read(ctx, "users", "a", &second))
	assert.Equal(t, 1, second.Count, "mutating a read result must not affect the store")
}

func TestMemStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Create(ctx, "users", "a", record{}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = s.Update(ctx, "users", "a", record{Count: n})
		}(i)
		go func() {
			defer wg.Done()
			var got record
			_ = s.Read(ctx, "users", "a", &got)
		}()
	}
	wg.Wait()
}
