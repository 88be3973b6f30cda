package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/rational"
	"svw.info/any4/internal/sampler"
	"svw.info/any4/internal/usecase"
	"svw.info/any4/internal/validator"
)

// targetPlaces is the number of decimals in the display form of a target.
const targetPlaces = 4

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---- Boards ----

type boardResp struct {
	domain.Board
	TargetDecimal string `json:"targetDecimal"`
}

type boardsResp struct {
	Boards []boardResp `json:"boards"`
}

// setConfigFromQuery reads size, target, difficulty and validator from the
// query string. Missing size means one board; missing difficulty means all.
func setConfigFromQuery(r *http.Request) (domain.SetConfig, error) {
	q := r.URL.Query()
	size := 1
	if s := q.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return domain.SetConfig{}, errors.New("size must be an integer")
		}
		size = n
	}
	var target *rational.Value
	if s := q.Get("target"); s != "" {
		v, err := rational.Parse(s)
		if err != nil {
			return domain.SetConfig{}, err
		}
		target = &v
	}
	ds, err := domain.ParseDifficulties(q.Get("difficulty"))
	if err != nil {
		return domain.SetConfig{}, err
	}
	v, err := validator.Lookup(q.Get("validator"))
	if err != nil {
		return domain.SetConfig{}, err
	}
	return domain.NewSetConfig(size, target, v, ds...), nil
}

func (h *Handler) handleBoards(w http.ResponseWriter, r *http.Request) {
	cfg, err := setConfigFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	boards, err := h.UC.Boards(r.Context(), cfg)
	switch {
	case errors.Is(err, sampler.ErrImpossible):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, sampler.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := boardsResp{Boards: make([]boardResp, 0, len(boards))}
	for _, b := range boards {
		out.Boards = append(out.Boards, boardResp{Board: b, TargetDecimal: b.Target.Decimal(targetPlaces)})
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- Targets ----

type targetsResp struct {
	Targets []string `json:"targets"`
}

func (h *Handler) handleTargets(w http.ResponseWriter, r *http.Request) {
	ts, err := h.UC.Targets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, targetsResp{Targets: ts})
}

// ---- Solve ----

type solveReq struct {
	Input  []int          `json:"input"`
	Target rational.Value `json:"target"`
}

type solveResp struct {
	Steps      []domain.Step `json:"steps"`
	Unique     *bool         `json:"unique,omitempty"`
	DurationMs int64         `json:"durationMs"`
	Nodes      int           `json:"nodes"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	in := rational.Ints(req.Input)
	steps, st, err := h.UC.Solve(r.Context(), in, req.Target)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	resp := solveResp{Steps: steps, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes}
	if unique, ok, _ := h.UC.Unique(r.Context(), in, req.Target); ok {
		resp.Unique = &unique
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Hint ----

type hintReq struct {
	Hand   []rational.Value `json:"hand"`
	Target rational.Value   `json:"target"`
}

type hintResp struct {
	Found bool         `json:"found"`
	Step  *domain.Step `json:"step,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	step, ok, err := h.UC.Hint(r.Context(), req.Hand, req.Target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := hintResp{Found: ok}
	if ok {
		resp.Step = &step
	}
	writeJSON(w, http.StatusOK, resp)
}
