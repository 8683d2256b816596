// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fakepaperia/fakepaperia/internal/history"
	"github.com/fakepaperia/fakepaperia/internal/vectorstore"
	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// historyLimit caps the rows returned by /api/history.
const historyLimit = 20

// Journal mastheads stamped onto generated papers, one picked at
// random per paper.
var paperStyles = []string{
	"📜 황당무계 학회지",
	"🎭 허구연구 저널",
	"🎪 망상과학 논문집",
	"🎨 상상력 연구회보",
	"🎯 헛소리 학술지",
}

// issueDateFormat renders the Korean publication date line.
const issueDateFormat = "2006년 01월 02일"

// Hooks replaced in tests for deterministic output.
var (
	randIntn = rand.Intn
	timeNow  = time.Now
)

// HistoryRecorder is the slice of the history store the handlers use.
// Recording failures are logged and never block a response.
type HistoryRecorder interface {
	RecordSearch(ctx context.Context, query string, keywords []string, paperCount int) error
	RecordPaper(ctx context.Context, query string, paper types.GeneratedPaper, reaction, gifURL string) error
	RecentSearches(ctx context.Context, n int) ([]history.SearchRecord, error)
	RecentPapers(ctx context.Context, n int) ([]history.PaperRecord, error)
}

// Deps are the pipeline stages the handlers orchestrate. Function
// fields keep the wiring flat and let tests substitute any stage.
type Deps struct {
	// Search runs keyword extraction and paper aggregation.
	Search func(ctx context.Context, query string, w io.Writer) (types.SearchResult, error)
	// NewStore creates an empty session vector store.
	NewStore func() *vectorstore.Store
	// LoadStore restores a session store from its snapshot path.
	LoadStore func(path string) (*vectorstore.Store, error)
	// Generate produces the satirical paper from a session store.
	Generate func(ctx context.Context, store *vectorstore.Store, query string) (types.GeneratedPaper, error)
	// React returns the comedic reaction and GIF URL for a paper.
	// Optional; a nil React skips the reaction step.
	React func(ctx context.Context, title, abstract string) (reaction, gifURL string, err error)
	// History records runs. Optional; nil disables history.
	History HistoryRecorder
}

type handlers struct {
	storeDir string
	deps     Deps
	logw     io.Writer
	started  time.Time

	mu       sync.Mutex
	sessions map[string]string // session id -> snapshot path
}

func newHandlers(storeDir string, deps Deps, logw io.Writer) *handlers {
	return &handlers{
		storeDir: storeDir,
		deps:     deps,
		logw:     logw,
		started:  timeNow(),
		sessions: make(map[string]string),
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	SessionID string        `json:"session_id"`
	Keywords  []string      `json:"keywords"`
	Papers    []types.Paper `json:"papers"`
	Total     int           `json:"total"`
}

func (h *handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query"})
		return
	}

	ctx := r.Context()
	result, err := h.deps.Search(ctx, req.Query, h.logw)
	if err != nil {
		fmt.Fprintf(h.logw, "search error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}

	store := h.deps.NewStore()
	if err := store.Add(ctx, result.Papers); err != nil {
		fmt.Fprintf(h.logw, "indexing error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "indexing failed"})
		return
	}

	sessionID := uuid.NewString()
	path := filepath.Join(h.storeDir, "store_"+sessionID)
	if err := store.Save(path); err != nil {
		fmt.Fprintf(h.logw, "snapshot error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "saving session failed"})
		return
	}

	h.mu.Lock()
	h.sessions[sessionID] = path
	h.mu.Unlock()

	if h.deps.History != nil {
		if err := h.deps.History.RecordSearch(ctx, req.Query, result.Keywords, len(result.Papers)); err != nil {
			fmt.Fprintf(h.logw, "warning: recording search: %v\n", err)
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		SessionID: sessionID,
		Keywords:  result.Keywords,
		Papers:    result.Papers,
		Total:     len(result.Papers),
	})
}

type generateRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

type generateResponse struct {
	SessionID string               `json:"session_id"`
	Paper     types.GeneratedPaper `json:"paper"`
	Reaction  string               `json:"reaction"`
	GifURL    string               `json:"gif_url"`
	Journal   string               `json:"journal"`
	IssuedAt  string               `json:"issued_at"`
}

func (h *handlers) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing session_id or query"})
		return
	}

	path, ok := h.sessionPath(req.SessionID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
		return
	}

	store, err := h.deps.LoadStore(path)
	if err != nil {
		fmt.Fprintf(h.logw, "session load error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "loading session failed"})
		return
	}

	ctx := r.Context()
	paper, err := h.deps.Generate(ctx, store, req.Query)
	if err != nil {
		fmt.Fprintf(h.logw, "generation error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "generation failed"})
		return
	}

	var reaction, gifURL string
	if h.deps.React != nil {
		reaction, gifURL, err = h.deps.React(ctx, paper.Title, paper.Abstract)
		if err != nil {
			fmt.Fprintf(h.logw, "warning: reaction failed: %v\n", err)
			reaction, gifURL = "", ""
		}
	}

	if h.deps.History != nil {
		if err := h.deps.History.RecordPaper(ctx, req.Query, paper, reaction, gifURL); err != nil {
			fmt.Fprintf(h.logw, "warning: recording paper: %v\n", err)
		}
	}

	writeJSON(w, http.StatusOK, generateResponse{
		SessionID: req.SessionID,
		Paper:     paper,
		Reaction:  reaction,
		GifURL:    gifURL,
		Journal:   paperStyles[randIntn(len(paperStyles))],
		IssuedAt:  timeNow().Format(issueDateFormat),
	})
}

// sessionPath resolves a session id to its snapshot path, falling back
// to the store directory so sessions survive a server restart.
func (h *handlers) sessionPath(sessionID string) (string, bool) {
	h.mu.Lock()
	path, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if ok {
		return path, true
	}
	path = filepath.Join(h.storeDir, "store_"+sessionID)
	if _, err := os.Stat(path + ".json"); err != nil {
		return "", false
	}
	h.mu.Lock()
	h.sessions[sessionID] = path
	h.mu.Unlock()
	return path, true
}

type historyResponse struct {
	Searches []history.SearchRecord `json:"searches"`
	Papers   []history.PaperRecord  `json:"papers"`
}

func (h *handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.deps.History == nil {
		writeJSON(w, http.StatusOK, historyResponse{})
		return
	}
	ctx := r.Context()
	searches, err := h.deps.History.RecentSearches(ctx, historyLimit)
	if err != nil {
		fmt.Fprintf(h.logw, "history error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	papers, err := h.deps.History.RecentPapers(ctx, historyLimit)
	if err != nil {
		fmt.Fprintf(h.logw, "history error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Searches: searches, Papers: papers})
}

type statusResponse struct {
	Sessions      int    `json:"sessions"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	StartedAt     string `json:"started_at"`
}

func (h *handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	sessions := len(h.sessions)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, statusResponse{
		Sessions:      sessions,
		UptimeSeconds: int64(timeNow().Sub(h.started).Seconds()),
		StartedAt:     h.started.UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
