package submissions

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/services/execution"
	"gitlab.com/bugfix-arena.net/internal/core/services/submission"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/handlers"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

// SubmissionHandler handles scored submissions, free runs and submission audit
type SubmissionHandler struct {
	submissionService submission.ISubmissionService
	executionService  execution.IExecutionService
	logger            primary.Logger
}

func NewSubmissionHandler(
	submissionService submission.ISubmissionService,
	executionService execution.IExecutionService,
	logger primary.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		executionService:  executionService,
		logger:            logger,
	}
}

// RegisterRoutes mounts the routes. limit wraps the routes that reach the sandbox.
func (h *SubmissionHandler) RegisterRoutes(participant, admin *mux.Router, limit mux.MiddlewareFunc) {
	sandbox := participant.NewRoute().Subrouter()
	if limit != nil {
		sandbox.Use(limit)
	}
	sandbox.HandleFunc("/submissions", h.Submit).Methods(http.MethodPost)
	sandbox.HandleFunc("/run", h.Run).Methods(http.MethodPost)

	participant.HandleFunc("/users/{userId}/solved-questions", h.SolvedQuestions).Methods(http.MethodGet)

	admin.HandleFunc("/rounds/{roundId}/submissions", h.ListRoundSubmissions).Methods(http.MethodGet)
	admin.HandleFunc("/submissions/{submissionId}", h.GetSubmission).Methods(http.MethodGet)
}

func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := handlers.ClaimsFromContext(r.Context())
	if !ok {
		handlers.ResponseServiceError(w, h.logger, errs.Unauthorized)
		return
	}

	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	result, err := h.submissionService.Submit(r.Context(), submission.SubmitCommand{
		UserID:     claims.UserID,
		RoundID:    req.RoundID,
		QuestionID: req.QuestionID,
		Code:       req.Code,
		Language:   req.Language,
	})
	if err != nil {
		h.logger.Info("Submission rejected", "userId", claims.UserID, "questionId", req.QuestionID, "error", err)
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}

func (h *SubmissionHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	out, err := h.executionService.Run(r.Context(), req.Language, req.Code, req.Stdin)
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, out)
}

func (h *SubmissionHandler) SolvedQuestions(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}
	claims, ok := handlers.ClaimsFromContext(r.Context())
	if !ok {
		handlers.ResponseServiceError(w, h.logger, errs.Unauthorized)
		return
	}
	if claims.UserID != userID && claims.Role != domain.RoleAdmin {
		handlers.ResponseServiceError(w, h.logger, errs.Forbidden)
		return
	}

	ids, err := h.submissionService.SolvedQuestions(r.Context(), userID)
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, SolvedQuestionsResponse{UserID: userID, QuestionIDs: ids})
}

func (h *SubmissionHandler) ListRoundSubmissions(w http.ResponseWriter, r *http.Request) {
	roundID, err := handlers.PathID(r, "roundId")
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	subs, err := h.submissionService.ListRoundSubmissions(r.Context(), roundID)
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, subs)
}

func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := uuid.Parse(mux.Vars(r)["submissionId"])
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, fmt.Errorf("%w: invalid submission id", errs.ErrValidation))
		return
	}

	sub, err := h.submissionService.GetSubmission(r.Context(), submissionID)
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, sub)
}
