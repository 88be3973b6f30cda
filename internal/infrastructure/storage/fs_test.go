package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/any4/internal/domain"
)

func samplePools() domain.PoolMap {
	m := domain.PoolMap{}
	m["24"] = domain.NewDifficultyPools()
	m["24"].Add(domain.Easy, []int{1, 2, 3, 4})
	m["24"].Add(domain.Hard, []int{3, 3, 8, 8})
	m["1/2"] = domain.NewDifficultyPools()
	m["1/2"].Add(domain.Moderate, []int{1, 2})
	return m
}

func TestFSRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFS(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, s.Prepare(ctx))

	ok, err := s.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := samplePools()
	require.NoError(t, s.Save(ctx, want))
	ok, err = s.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, [][]int{}, got["1/2"].Easy)
}

func TestFSFileLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFS(dir)
	m := domain.PoolMap{"3": domain.NewDifficultyPools()}
	m["3"].Add(domain.Easy, []int{1, 2})
	require.NoError(t, s.Save(ctx, m))

	raw, err := os.ReadFile(filepath.Join(dir, DefaultPoolFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"3":{"easy":[[1,2]],"moderate":[],"hard":[]}}`, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFSLoadMalformed(t *testing.T) {
	ctx := context.Background()
	for name, body := range map[string]string{
		"garbage": "{not json",
		"null":    "null",
		"shape":   `{"24":{"easy":"oops"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPoolFile), []byte(body), 0o644))
			_, err := NewFS(dir).Load(ctx)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestFSLoadFillsMissingTiers(t *testing.T) {
	dir := t.TempDir()
	s := NewFSFile(dir, "pools.json")
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"5":{"hard":[[1,4]]},"6":null}`), 0o644))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, got, "5")
	assert.NotContains(t, got, "6")
	assert.Equal(t, [][]int{}, got["5"].Easy)
	assert.Equal(t, [][]int{{1, 4}}, got["5"].Hard)
}

func TestFSLoadMissing(t *testing.T) {
	_, err := NewFS(t.TempDir()).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
