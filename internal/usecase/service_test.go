package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/generator"
	"svw.info/any4/internal/hint"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
	"svw.info/any4/internal/sampler"
	"svw.info/any4/internal/solver"
)

type memStore struct {
	prepareErr error
	saved      domain.PoolMap
	saves      int
	loads      int
}

func (s *memStore) Prepare(context.Context) error { return s.prepareErr }
func (s *memStore) Exists(context.Context) (bool, error) {
	return s.saved != nil, nil
}
func (s *memStore) Save(_ context.Context, m domain.PoolMap) error {
	s.saved = m.Clone()
	s.saves++
	return nil
}
func (s *memStore) Load(context.Context) (domain.PoolMap, error) {
	s.loads++
	if s.saved == nil {
		return nil, errors.New("nothing saved")
	}
	return s.saved.Clone(), nil
}

func newTestService(st ports.PoolStore) *Service {
	sv := solver.NewBacktrackingSolver()
	return NewService(
		generator.NewPoolGenerator(generator.DefaultThresholds(), 2, nil),
		st,
		sampler.New(7),
		sv,
		hint.NewNext(sv),
		nil,
	)
}

func TestInitGeneratesOnce(t *testing.T) {
	ctx := context.Background()
	st := &memStore{}
	u := newTestService(st)

	_, err := u.Init(ctx, InitRequest{Min: 1, Max: 4, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, st.saves)
	require.Contains(t, st.saved, "1/2")

	_, err = u.Init(ctx, InitRequest{Min: 1, Max: 4, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, st.saves, "existing pool is reused")

	_, err = u.Init(ctx, InitRequest{Min: 1, Max: 4, Size: 2, Force: true})
	require.NoError(t, err)
	assert.Equal(t, 2, st.saves)
}

func TestInitPrepareFailure(t *testing.T) {
	boom := errors.New("read-only")
	u := newTestService(&memStore{prepareErr: boom})
	_, err := u.Init(context.Background(), InitRequest{Min: 1, Max: 2, Size: 2})
	assert.ErrorIs(t, err, boom)
}

func TestPoolsCachedAndReloaded(t *testing.T) {
	ctx := context.Background()
	st := &memStore{saved: domain.PoolMap{"3": domain.NewDifficultyPools()}}
	st.saved["3"].Add(domain.Easy, []int{1, 2})
	u := newTestService(st)

	targets, err := u.Targets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, targets)
	_, err = u.Pools(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.loads)

	st.saved["4"] = domain.NewDifficultyPools()
	_, err = u.Reload(ctx)
	require.NoError(t, err)
	targets, err = u.Targets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, targets)
}

func TestBoardsLeavesMasterPoolsIntact(t *testing.T) {
	ctx := context.Background()
	st := &memStore{saved: domain.PoolMap{"3": domain.NewDifficultyPools()}}
	st.saved["3"].Add(domain.Easy, []int{1, 2})
	u := newTestService(st)

	for range 3 {
		boards, err := u.Boards(ctx, domain.NewSetConfig(1, nil, nil, domain.Easy))
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, []int{1, 2}, boards[0].Input)
	}

	_, err := u.Boards(ctx, domain.NewSetConfig(2, nil, nil, domain.Easy))
	assert.ErrorIs(t, err, sampler.ErrImpossible)
}

func TestSolveAndHint(t *testing.T) {
	ctx := context.Background()
	u := newTestService(&memStore{})
	in := rational.Ints([]int{1, 2, 3, 4})
	target := rational.FromInt(24)

	steps, _, err := u.Solve(ctx, in, target)
	require.NoError(t, err)
	h, ok, err := u.Hint(ctx, in, target)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, steps[0].String(), h.String())

	unique, ok, err := u.Unique(ctx, rational.Ints([]int{1, 2}), rational.FromInt(-1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, unique)
}

func TestNotConfigured(t *testing.T) {
	ctx := context.Background()
	u := NewService(nil, nil, nil, nil, nil, nil)
	_, err := u.Init(ctx, InitRequest{})
	assert.ErrorIs(t, err, errNotConfigured)
	_, err = u.Pools(ctx)
	assert.ErrorIs(t, err, errNotConfigured)
	_, err = u.Boards(ctx, domain.SetConfig{})
	assert.ErrorIs(t, err, errNotConfigured)
	_, _, err = u.Solve(ctx, nil, rational.Value{})
	assert.ErrorIs(t, err, errNotConfigured)
	_, _, err = u.Hint(ctx, nil, rational.Value{})
	assert.ErrorIs(t, err, errNotConfigured)
}
