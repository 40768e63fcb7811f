package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
	"github.com/civassist/cva-ui-api/internal/domain/model"
	"github.com/civassist/cva-ui-api/internal/service"
)

// CatalogService defines the interface for the public content surfaces.
type CatalogService interface {
	GetCandidate(ctx context.Context, id string) (*model.Candidate, error)
	ListCandidates(ctx context.Context, area, query string) ([]*model.Candidate, error)
	AnswerProfile(ctx context.Context, id, expr string) (any, error)
	QuizQuestions(ctx context.Context, groupLabel string) ([]*model.QuizQuestion, error)
	OpenPolls(ctx context.Context) ([]*model.Poll, error)
}

// GrantReader reads the current grant cookie pair.
type GrantReader interface {
	Current(jar *cookiejar.Jar) (*domainauth.Grant, bool)
}

// ContentHandlers provides HTTP handlers for the public catalog.
type ContentHandlers struct {
	Svc    CatalogService
	Grants GrantReader
}

// ListCandidates lists the candidates for one content area.
// GET /api/areas/{area}/candidates?q=<search>.
func (h *ContentHandlers) ListCandidates(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.ListCandidates(r.Context(), r.PathValue("area"), r.URL.Query().Get("q"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"candidates": list})
}

// GetCandidate returns one candidate by ID.
// GET /api/candidates/{id}.
func (h *ContentHandlers) GetCandidate(w http.ResponseWriter, r *http.Request) {
	cand, err := h.Svc.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, cand)
}

// AnswerProfile projects an answer out of one candidate's profile document.
// GET /api/candidates/{id}/answer?q=<expression>.
func (h *ContentHandlers) AnswerProfile(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.AnswerProfile(r.Context(), r.PathValue("id"), r.URL.Query().Get("q"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"answer": result})
}

// QuizQuestions lists the unlocked quiz questions for the caller's grant
// group. Without a grant cookie pair there is no group to read from, so the
// response asks for an exchange first.
// GET /api/quiz/questions.
func (h *ContentHandlers) QuizQuestions(w http.ResponseWriter, r *http.Request) {
	jar := GetJarFromContext(r.Context())
	grant, ok := h.Grants.Current(jar)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: service.ReasonTokenRequired,
			Err:     errors.New("an access grant is required"),
		})
		return
	}

	questions, err := h.Svc.QuizQuestions(r.Context(), grant.Group)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

// OpenPolls lists polls currently open for responses.
// GET /api/polls.
func (h *ContentHandlers) OpenPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.Svc.OpenPolls(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"polls": polls})
}
