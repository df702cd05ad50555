package runstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := New(Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStoreSaveGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := NewRun("texture.csv",
		[]float64{0.8, 0.1, 0.55},
		[]float64{0.4, 0.5, 0.62},
		1234, 1.0/3.0)
	require.NotEmpty(t, run.ID)

	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Dataset, got.Dataset)
	assert.Equal(t, run.Weights, got.Weights)
	assert.Equal(t, run.Trace, got.Trace)
	assert.Equal(t, run.Evaluations, got.Evaluations)
	assert.InDelta(t, run.Reduction, got.Reduction, 1e-12)
}

func TestStoreCompressedRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// A long trace pushes the payload past the compression threshold.
	trace := make([]float64, 2048)
	for i := range trace {
		trace[i] = float64(i) / float64(len(trace))
	}
	run := NewRun("big.csv", []float64{0.9, 0.3}, trace, 15000, 0.5)

	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Trace, got.Trace)
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := NewRun("a.csv", []float64{1}, nil, 10, 0)
	second := NewRun("b.csv", []float64{0}, nil, 20, 1)
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := NewRun("a.csv", []float64{1}, nil, 10, 0)
	require.NoError(t, store.Save(ctx, run))
	require.NoError(t, store.Delete(ctx, run.ID))

	_, err := store.Get(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, run.ID))
}

func TestStoreValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, nil), ErrNilRun)
	assert.ErrorIs(t, store.Save(ctx, &Run{}), ErrEmptyID)

	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = New(Config{})
	assert.Error(t, err)
}
