package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pagesmith/pagesmith/pkg/assist"
	"github.com/pagesmith/pagesmith/pkg/buildinfo"
	"github.com/pagesmith/pagesmith/pkg/canvas"
	"github.com/pagesmith/pagesmith/pkg/errors"
	"github.com/pagesmith/pagesmith/pkg/pipeline"
	"github.com/pagesmith/pagesmith/pkg/session"
)

// =============================================================================
// Response Helpers
// =============================================================================

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, statusFor(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPayload,
		errors.ErrCodeInvalidRegion, errors.ErrCodeInvalidComponent,
		errors.ErrCodeInvalidDocument:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeEmptyCanvas:
		return http.StatusConflict
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPayload, err, "decoding request body")
	}
	return nil
}

// =============================================================================
// Session Plumbing
// =============================================================================

// sessionView is the wire form of a session returned to clients.
type sessionView struct {
	ID        string          `json:"id"`
	Document  canvas.Document `json:"document"`
	ExpiresAt string          `json:"expires_at"`
}

func viewOf(sess *session.Session) sessionView {
	return sessionView{
		ID:        sess.ID,
		Document:  sess.Document,
		ExpiresAt: sess.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *Server) loadSession(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "loading session")
	}
	if sess == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	return sess, nil
}

// withController runs fn against the session's rebuilt placement store
// under the per-session lock and persists the resulting document.
// fn returns the response body for a 200 reply.
func (s *Server) withController(w http.ResponseWriter, r *http.Request, fn func(sess *session.Session, ctl *canvas.Controller) (any, error)) {
	id := chi.URLParam(r, "sessionID")
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	store, err := sess.Document.ToStore()
	if err != nil {
		s.writeError(w, err)
		return
	}
	ctl := canvas.NewController(store, s.logger)

	body, err := fn(sess, ctl)
	if err != nil {
		s.writeError(w, err)
		return
	}

	name := sess.Document.Name
	sess.Document = canvas.FromStore(store, s.canvasRect())
	sess.Document.Name = name
	sess.Touch(s.cfg.SessionTTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "saving session"))
		return
	}

	if body == nil {
		body = viewOf(sess)
	}
	s.writeJSON(w, http.StatusOK, body)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	byRegion := make(map[canvas.Region][]canvas.CatalogEntry, len(canvas.Regions()))
	for _, region := range canvas.Regions() {
		byRegion[region] = canvas.CatalogFor(region)
	}
	s.writeJSON(w, http.StatusOK, byRegion)
}

type createSessionRequest struct {
	Name string `json:"name,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if req.Name != "" {
		if err := errors.ValidateDocumentName(req.Name); err != nil {
			s.writeError(w, err)
			return
		}
	}

	doc := canvas.Document{
		Name:         req.Name,
		Canvas:       s.canvasRect(),
		ActiveRegion: canvas.DefaultRegion,
	}
	sess := session.New(doc, s.cfg.SessionTTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "saving session"))
		return
	}

	s.logger.Info("created session", "id", sess.ID, "name", req.Name)
	s.writeJSON(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "deleting session"))
		return
	}
	s.releaseLock(id)
	w.WriteHeader(http.StatusNoContent)
}

type dropRequest struct {
	Payload string  `json:"payload"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.withController(w, r, func(sess *session.Session, ctl *canvas.Controller) (any, error) {
		placed, ok, err := ctl.HandleDrop(req.Payload, canvas.Point{X: req.X, Y: req.Y}, s.canvasRect())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "drop suppressed by active drag")
		}
		return placed, nil
	})
}

type selectRequest struct {
	Type string `json:"type"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.withController(w, r, func(sess *session.Session, ctl *canvas.Controller) (any, error) {
		entry, ok := canvas.LookupEntry(ctl.Store().ActiveRegion(), canvas.ComponentType(req.Type))
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidComponent,
				"component type %q not available in region %q", req.Type, ctl.Store().ActiveRegion())
		}
		return ctl.SelectEntry(entry, s.canvasRect()), nil
	})
}

type regionRequest struct {
	Region string `json:"region"`
}

func (s *Server) handleSetRegion(w http.ResponseWriter, r *http.Request) {
	var req regionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.withController(w, r, func(sess *session.Session, ctl *canvas.Controller) (any, error) {
		region, err := canvas.ParseRegion(req.Region)
		if err != nil {
			return nil, err
		}
		if err := ctl.SetActiveRegion(region); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.withController(w, r, func(sess *session.Session, ctl *canvas.Controller) (any, error) {
		ctl.Reset()
		return nil, nil
	})
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleMoveComponent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "componentID"), 10, 64)
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidComponent, "invalid component id"))
		return
	}
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.withController(w, r, func(sess *session.Session, ctl *canvas.Controller) (any, error) {
		if _, ok := ctl.Store().Get(id); !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "component %d not found", id)
		}
		ctl.Store().UpdatePosition(id, canvas.Point{X: req.X, Y: req.Y}, s.canvasRect())
		moved, _ := ctl.Store().Get(id)
		return moved, nil
	})
}

func (s *Server) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "componentID"), 10, 64)
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidComponent, "invalid component id"))
		return
	}

	s.withController(w, r, func(sess *session.Session, ctl *canvas.Controller) (any, error) {
		// Remove is idempotent; deleting an absent id is not an error.
		ctl.Delete(id)
		return nil, nil
	})
}

type generateResponse struct {
	Markup       string         `json:"markup"`
	DocumentHash string         `json:"document_hash"`
	Cached       bool           `json:"cached"`
	Components   int            `json:"components"`
	RegionCounts map[string]int `json:"region_counts"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Document:     &sess.Document,
		CanvasWidth:  s.cfg.CanvasWidth,
		CanvasHeight: s.cfg.CanvasHeight,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	counts := make(map[string]int, len(result.Stats.RegionCounts))
	for region, n := range result.Stats.RegionCounts {
		counts[string(region)] = n
	}
	s.writeJSON(w, http.StatusOK, generateResponse{
		Markup:       result.Markup,
		DocumentHash: result.DocumentHash,
		Cached:       result.CacheInfo.GenerateHit,
		Components:   result.Stats.ComponentCount,
		RegionCounts: counts,
	})
}

type assistRequest struct {
	SessionID string `json:"session_id"`
	Prompt    string `json:"prompt,omitempty"`
}

func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	if s.assist == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "assist endpoint not configured"))
		return
	}

	var req assistRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.SessionID == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "session_id is required"))
		return
	}

	sess, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "loading session"))
		return
	}
	if sess == nil {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", req.SessionID))
		return
	}

	store, err := sess.Document.ToStore()
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp, err := s.assist.Suggest(r.Context(), assist.Request{
		Prompt:     req.Prompt,
		Components: assist.FromPlaced(store.Components()),
	}, false)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Pass-through: relay the remote response verbatim.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(resp)
}
