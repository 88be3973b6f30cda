package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/hint"
	"svw.info/any4/internal/sampler"
	"svw.info/any4/internal/solver"
	"svw.info/any4/internal/usecase"
)

type fixedStore struct{ m domain.PoolMap }

func (s fixedStore) Prepare(context.Context) error        { return nil }
func (s fixedStore) Exists(context.Context) (bool, error) { return true, nil }
func (s fixedStore) Save(context.Context, domain.PoolMap) error {
	return nil
}
func (s fixedStore) Load(context.Context) (domain.PoolMap, error) { return s.m.Clone(), nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := domain.PoolMap{
		"24":  domain.NewDifficultyPools(),
		"1/2": domain.NewDifficultyPools(),
	}
	m["24"].Add(domain.Easy, []int{1, 2, 3, 4})
	m["24"].Add(domain.Hard, []int{3, 3, 8, 8})
	m["1/2"].Add(domain.Moderate, []int{1, 2})

	sv := solver.NewBacktrackingSolver()
	uc := usecase.NewService(nil, fixedStore{m: m}, sampler.New(1), sv, hint.NewNext(sv), nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(uc).Routes(logger))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	return res.StatusCode
}

func TestBoards(t *testing.T) {
	srv := newTestServer(t)

	var out struct {
		Boards []struct {
			ID            string `json:"id"`
			Input         []int  `json:"input"`
			Target        string `json:"target"`
			TargetDecimal string `json:"targetDecimal"`
			Difficulty    string `json:"difficulty"`
		} `json:"boards"`
	}
	code := getJSON(t, srv.URL+"/api/boards?size=2&target=24&difficulty=easy,hard", &out)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out.Boards, 2)
	for _, b := range out.Boards {
		assert.Equal(t, "24", b.Target)
		assert.NotEmpty(t, b.ID)
	}

	code = getJSON(t, srv.URL+"/api/boards?target=0.5", &out)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out.Boards, 1)
	assert.Equal(t, "1/2", out.Boards[0].Target)
	assert.Equal(t, "0.5", out.Boards[0].TargetDecimal)
	assert.Equal(t, "moderate", out.Boards[0].Difficulty)
}

func TestBoardsErrors(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		query string
		code  int
	}{
		{"size=3&target=24", http.StatusUnprocessableEntity},
		{"size=1000000000000", http.StatusUnprocessableEntity},
		{"size=1&target=7", http.StatusUnprocessableEntity},
		{"size=2&validator=integer", http.StatusOK},
		{"size=3&validator=integer", http.StatusUnprocessableEntity},
		{"size=x", http.StatusBadRequest},
		{"difficulty=brutal", http.StatusBadRequest},
		{"validator=prime", http.StatusBadRequest},
		{"size=-1", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			var out map[string]any
			assert.Equal(t, tc.code, getJSON(t, srv.URL+"/api/boards?"+tc.query, &out))
			if tc.code != http.StatusOK {
				assert.NotEmpty(t, out["error"])
			}
		})
	}
}

func TestTargets(t *testing.T) {
	srv := newTestServer(t)
	var out targetsResp
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/targets", &out))
	assert.Equal(t, []string{"1/2", "24"}, out.Targets)
}

func TestSolveAndHint(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Post(srv.URL+"/api/solve", "application/json",
		strings.NewReader(`{"input":[3,3,8,8],"target":"24"}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var sol struct {
		Unique *bool `json:"unique"`
		Steps  []struct {
			Op     string `json:"op"`
			Result string `json:"result"`
		} `json:"steps"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&sol))
	require.Len(t, sol.Steps, 3)
	assert.Equal(t, "24", sol.Steps[2].Result)
	require.NotNil(t, sol.Unique)
	assert.False(t, *sol.Unique)

	res2, err := http.Post(srv.URL+"/api/solve", "application/json",
		strings.NewReader(`{"input":[1,1],"target":"24"}`))
	require.NoError(t, err)
	res2.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, res2.StatusCode)

	res3, err := http.Post(srv.URL+"/api/hint", "application/json",
		strings.NewReader(`{"hand":["1/2","2"],"target":"1"}`))
	require.NoError(t, err)
	defer res3.Body.Close()
	var h struct {
		Found bool `json:"found"`
		Step  struct {
			Result string `json:"result"`
		} `json:"step"`
	}
	require.NoError(t, json.NewDecoder(res3.Body).Decode(&h))
	assert.True(t, h.Found)
	assert.Equal(t, "1", h.Step.Result)
}

func TestHealthMetricsAndIndex(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/metrics", "/", "/static/app.js"} {
		res, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
	}
}
