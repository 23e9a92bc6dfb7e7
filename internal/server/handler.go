// Package server provides the JSON HTTP handlers for the review engine.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/k-hayashi/quizloop/internal/database"
	"github.com/k-hayashi/quizloop/internal/exam"
	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/selector"
	"github.com/k-hayashi/quizloop/internal/session"
)

// Handler serves the engine's HTTP API.
type Handler struct {
	selector selector.Selector
	manager  *session.Manager
	exams    *exam.Adapter
	logger   *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(sel selector.Selector, manager *session.Manager, exams *exam.Adapter, logger *slog.Logger) *Handler {
	return &Handler{selector: sel, manager: manager, exams: exams, logger: logger}
}

// Register mounts every route on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/select-next", h.selectNext)
	mux.HandleFunc("POST /v1/batches", h.openBatch)
	mux.HandleFunc("POST /v1/batches/{id}/answers", h.submitAnswer)
	mux.HandleFunc("POST /v1/batches/{id}/finish", h.finishBatch)
	mux.HandleFunc("GET /v1/batches/{id}/questions", h.getQuestions)
	mux.HandleFunc("POST /v1/exams", h.openExam)
}

type selectNextRequest struct {
	UserID        string `json:"user_id"`
	CourseID      string `json:"course_id"`
	BatchSize     int    `json:"batch_size"`
	AllowNewRound bool   `json:"allow_new_round"`
}

func (h *Handler) selectNext(w http.ResponseWriter, r *http.Request) {
	var req selectNextRequest
	if !h.decode(w, r, &req) {
		return
	}

	questionIDs, err := h.selector.SelectNext(r.Context(), req.UserID, req.CourseID, req.BatchSize, req.AllowNewRound)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if questionIDs == nil {
		questionIDs = []string{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"question_ids": questionIDs})
}

type openBatchRequest struct {
	UserID    string `json:"user_id"`
	CourseID  string `json:"course_id"`
	BatchSize int    `json:"batch_size"`
}

func (h *Handler) openBatch(w http.ResponseWriter, r *http.Request) {
	var req openBatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	batch, err := h.manager.Open(r.Context(), req.UserID, req.CourseID, req.BatchSize)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, batch)
}

type submitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.manager.SubmitAnswer(r.Context(), r.PathValue("id"), req.QuestionID, req.Answer); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) finishBatch(w http.ResponseWriter, r *http.Request) {
	summary, err := h.manager.Finish(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getQuestions(w http.ResponseWriter, r *http.Request) {
	batch, views, err := h.manager.GetQuestions(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"batch":     batch,
		"questions": views,
	})
}

type openExamRequest struct {
	UserID     string             `json:"user_id"`
	CourseID   string             `json:"course_id"`
	SetName    string             `json:"set_name,omitempty"`
	Shuffle    bool               `json:"shuffle,omitempty"`
	Extraction *extractionRequest `json:"extraction,omitempty"`
}

type extractionRequest struct {
	Quotas        map[question.Type]int `json:"quotas"`
	DifficultyMin int                   `json:"difficulty_min"`
	DifficultyMax int                   `json:"difficulty_max"`
}

func (h *Handler) openExam(w http.ResponseWriter, r *http.Request) {
	var req openExamRequest
	if !h.decode(w, r, &req) {
		return
	}

	var (
		batch *session.Batch
		err   error
	)
	switch {
	case req.Extraction != nil:
		batch, err = h.exams.OpenExtraction(r.Context(), req.UserID, req.CourseID, exam.ExtractionSpec{
			Quotas:        req.Extraction.Quotas,
			DifficultyMin: req.Extraction.DifficultyMin,
			DifficultyMax: req.Extraction.DifficultyMax,
		})
	case req.SetName != "":
		batch, err = h.exams.OpenFixedSet(r.Context(), req.UserID, req.CourseID, req.SetName, req.Shuffle)
	default:
		h.writeJSON(w, http.StatusBadRequest, errorBody("either extraction or set_name is required"))
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, batch)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("decode request: %v", err)))
		return false
	}
	return true
}

// writeError maps typed engine failures to HTTP statuses. Conflicts carry a
// retryable hint so clients know a plain retry is safe.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficientErr *exam.InsufficientQuestionsError

	switch {
	case errors.As(err, &insufficientErr):
		body := errorBody(insufficientErr.Error())
		body["type"] = insufficientErr.Type
		body["shortfall"] = insufficientErr.Shortfall
		h.writeJSON(w, http.StatusUnprocessableEntity, body)
	case errors.Is(err, session.ErrEmptySelection):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
	case errors.Is(err, session.ErrBatchNotFound), errors.Is(err, question.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, session.ErrUnknownQuestion):
		h.writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, session.ErrInvalidBatchState), errors.Is(err, session.ErrAlreadyAnswered):
		h.writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case database.IsRetryableConflict(err):
		body := errorBody(err.Error())
		body["retryable"] = true
		h.writeJSON(w, http.StatusConflict, body)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", slog.Any("error", err))
	}
}

func errorBody(message string) map[string]any {
	return map[string]any{"error": message}
}
