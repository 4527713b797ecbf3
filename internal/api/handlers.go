package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisek/lumi/internal/content"
	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/rewards"
	"github.com/abhisek/lumi/internal/skillmap"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/vault"
)

// quizEntry remembers a served question so answers can be checked later.
type quizEntry struct {
	item      quiz.Item
	mistakeID string // set for vault variants
}

type dashboardResponse struct {
	Plan     plan.DayPlan   `json:"plan"`
	Progress progressJSON   `json:"progress"`
	Stats    plan.UserStats `json:"stats"`
	Name     string         `json:"name"`
	Wallet   rewards.Wallet `json:"wallet"`
	Pending  int            `json:"pending_mistakes"`

	Abilities map[string]int `json:"abilities"`
}

type progressJSON struct {
	Done         int `json:"done"`
	Total        int `json:"total"`
	MinutesDone  int `json:"minutes_done"`
	MinutesTotal int `json:"minutes_total"`
	Percent      int `json:"percent"`
}

func toProgressJSON(p plan.Progress) progressJSON {
	return progressJSON{
		Done:         p.Done,
		Total:        p.Total,
		MinutesDone:  p.MinutesDone,
		MinutesTotal: p.MinutesTotal,
		Percent:      p.Percent(),
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) dashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.deps
	writeJSON(w, http.StatusOK, dashboardResponse{
		Plan:     d.Board.Plan(),
		Progress: toProgressJSON(d.Board.Progress()),
		Stats:    d.Stats,
		Name:     d.Profile.Name,
		Wallet:   d.Rewards.Wallet(),
		Pending:  d.Vault.Vault.PendingCount(),

		Abilities: d.Profile.Abilities,
	})
}

// ── Plan ────────────────────────────────────────────────

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	f, err := plan.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.deps.Board.Plan()
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       p.ID,
		"title":    p.Title,
		"total_xp": p.TotalXP,
		"tasks":    s.deps.Board.Filter(f),
		"progress": toProgressJSON(s.deps.Board.Progress()),
	})
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	done, err := s.deps.ToggleTask(r.Context(), id)
	if errors.Is(err, plan.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "completed": done})
}

// ── Vault ───────────────────────────────────────────────

func (s *Server) listVault(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, err := vault.ParseStatusFilter(q.Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f := vault.Filter{Status: status}
	if raw := q.Get("subject"); raw != "" && raw != "all" {
		if f.Subject, err = subject.Parse(raw); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"groups":  s.deps.Vault.Vault.Filter(f),
		"pending": s.deps.Vault.Vault.PendingCount(),
	})
}

func (s *Server) vaultStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.deps.Vault.Vault.SubjectStats())
}

func (s *Server) starMistake(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	starred, err := s.deps.Vault.ToggleStar(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "starred": starred})
}

type confirmRequest struct {
	// Kind optionally pins the expected action, master or unmaster.
	Kind vault.ConfirmKind `json:"kind"`
}

func (s *Server) confirmMistake(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req confirmRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.deps.Vault.Vault.RequestToggle(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if req.Kind != "" && req.Kind != c.Kind {
		writeError(w, http.StatusConflict, fmt.Errorf("%w: %s is %s", vault.ErrStale, id, c.From))
		return
	}
	t, err := s.deps.Vault.Confirm(r.Context(), c)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "from": t.From, "to": t.To})
}

func (s *Server) variant(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.deps.Content.Variant(r.Context(), id)
	if errors.Is(err, content.ErrUnknownMistake) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.quiz[it.ID] = quizEntry{item: it, mistakeID: id}
	writeJSON(w, http.StatusOK, publicItem(it))
}

// ── Maps ────────────────────────────────────────────────

func (s *Server) walker(r *http.Request) (*skillmap.Walker, int, error) {
	subj, err := subject.Parse(mux.Vars(r)["subject"])
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	w, err := s.deps.Walker(r.Context(), subj)
	if err != nil {
		return nil, http.StatusNotFound, err
	}
	return w, 0, nil
}

type mapResponse struct {
	Map      skillmap.Map      `json:"map"`
	Progress skillmap.Progress `json:"progress"`
	Current  string            `json:"current,omitempty"`
}

func mapJSON(w *skillmap.Walker) mapResponse {
	resp := mapResponse{Map: w.Map(), Progress: w.Progress()}
	if n, ok := w.Current(); ok {
		resp.Current = n.ID
	}
	return resp
}

func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	walker, status, err := s.walker(r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, mapJSON(walker))
}

type completeRequest struct {
	Stars int `json:"stars"`
}

func (s *Server) completeNode(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	walker, status, err := s.walker(r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	if _, err := s.deps.CompleteNode(r.Context(), walker, mux.Vars(r)["id"], req.Stars); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, mapJSON(walker))
}

// ── Quiz ────────────────────────────────────────────────

// publicItem hides the answer key from the client.
func publicItem(it quiz.Item) quiz.Item {
	it = it.Clone()
	it.Correct = nil
	it.Explanation = ""
	it.Feedback = ""
	return it
}

func (s *Server) getQuiz(w http.ResponseWriter, r *http.Request) {
	subj, err := subject.Parse(mux.Vars(r)["subject"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.deps.Content.QuizBank(r.Context(), subj)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	out := make([]quiz.Item, len(items))
	for i, it := range items {
		s.quiz[it.ID] = quizEntry{item: it}
		out[i] = publicItem(it)
	}
	writeJSON(w, http.StatusOK, map[string]any{"subject": subj, "items": out})
}

type checkRequest struct {
	ItemID string      `json:"item_id"`
	Answer quiz.Answer `json:"answer"`
}

type checkResponse struct {
	Correct     bool        `json:"correct"`
	Answer      quiz.Answer `json:"correct_answer"`
	Explanation string      `json:"explanation,omitempty"`
}

func (s *Server) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, errors.New("item_id is required"))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.quiz[req.ItemID]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("question %q was not served", req.ItemID))
		return
	}
	correct := entry.item.Check(req.Answer)
	if entry.mistakeID != "" {
		// A served variant counts as one review; the first answer stands.
		delete(s.quiz, req.ItemID)
		if err := s.deps.Vault.Review(r.Context(), entry.mistakeID, correct); err != nil {
			s.log.Warn("record variant review failed", "item", entry.mistakeID, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, checkResponse{
		Correct:     correct,
		Answer:      entry.item.Correct,
		Explanation: entry.item.Explanation,
	})
}

// ── Rewards ─────────────────────────────────────────────

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	period, err := rewards.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := rewards.BuildLeaderboard(period, s.deps.Profile.Roster, s.deps.Rand)
	writeJSON(w, http.StatusOK, map[string]any{"period": period, "entries": entries})
}

func (s *Server) listStore(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"wallet": s.deps.Rewards.Wallet(),
		"items":  s.deps.Rewards.Catalog(),
	})
}

func (s *Server) buy(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.deps.Rewards.Buy(r.Context(), id)
	if err != nil {
		writeError(w, buyStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": it, "wallet": s.deps.Rewards.Wallet()})
}

func buyStatus(err error) int {
	switch {
	case errors.Is(err, rewards.ErrInsufficientCoins):
		return http.StatusPaymentRequired
	case errors.Is(err, rewards.ErrLocked):
		return http.StatusForbidden
	case errors.Is(err, rewards.ErrAlreadyOwned):
		return http.StatusConflict
	default:
		return http.StatusNotFound
	}
}
