// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	h := NewHolder(Options{})
	h.loadFn = func(Options) (*Document, error) {
		calls.Add(1)
		return Seed(), nil
	}
	assert.Equal(t, StateUninitialized, h.State())

	var wg sync.WaitGroup
	docs := make([]*Document, 32)
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := h.Get()
			assert.NoError(t, err)
			docs[i] = d
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StateLoaded, h.State())
	for _, d := range docs {
		assert.Same(t, docs[0], d)
	}
}

func TestHolder_FailureIsTerminal(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	h := NewHolder(Options{})
	h.loadFn = func(Options) (*Document, error) {
		calls.Add(1)
		return nil, boom
	}

	_, err := h.Get()
	require.ErrorIs(t, err, boom)
	_, err = h.Get()
	require.ErrorIs(t, err, boom)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StateFailed, h.State())
	assert.Equal(t, "failed", h.State().String())
}

func TestHolder_IsolatedInstances(t *testing.T) {
	a := NewHolder(Options{Path: "testdata/legacy.yaml"})
	b := NewHolder(Options{Path: "testdata/legacy.yaml"})

	da, err := a.Get()
	require.NoError(t, err)
	db, err := b.Get()
	require.NoError(t, err)

	assert.NotSame(t, da, db)
	dumpA, err := da.Dump()
	require.NoError(t, err)
	dumpB, err := db.Dump()
	require.NoError(t, err)
	assert.Equal(t, string(dumpA), string(dumpB))
}
