package questions

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/services/question"
	"gitlab.com/bugfix-arena.net/internal/handlers"
)

type ApiHandler struct {
	QuestionService question.IQuestionService
	logger          primary.Logger
}

func NewHandler(questionService question.IQuestionService, logger primary.Logger) *ApiHandler {
	return &ApiHandler{
		QuestionService: questionService,
		logger:          logger,
	}
}

func (api *ApiHandler) Register(participant, admin *mux.Router) {
	participant.HandleFunc("/rounds/{roundId}/questions", api.ListForParticipant).Methods(http.MethodGet)

	admin.HandleFunc("/rounds/{roundId}/questions", api.ListForAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/rounds/{roundId}/questions", api.CreateQuestion).Methods(http.MethodPost)
	admin.HandleFunc("/questions/{questionId}", api.UpdateQuestion).Methods(http.MethodPut)
	admin.HandleFunc("/questions/{questionId}", api.DeleteQuestion).Methods(http.MethodDelete)
	admin.HandleFunc("/questions/{questionId}/testcases", api.AddTestCase).Methods(http.MethodPost)
	admin.HandleFunc("/testcases/{testCaseId}", api.UpdateTestCase).Methods(http.MethodPut)
	admin.HandleFunc("/testcases/{testCaseId}", api.DeleteTestCase).Methods(http.MethodDelete)
	admin.HandleFunc("/questions/{questionId}/buggycodes", api.AddBuggyCode).Methods(http.MethodPost)
	admin.HandleFunc("/buggycodes/{buggyCodeId}", api.UpdateBuggyCode).Methods(http.MethodPut)
	admin.HandleFunc("/buggycodes/{buggyCodeId}", api.DeleteBuggyCode).Methods(http.MethodDelete)
}

func (api *ApiHandler) ListForParticipant(w http.ResponseWriter, r *http.Request) {
	roundID, err := handlers.PathID(r, "roundId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	questions, err := api.QuestionService.ListForParticipant(r.Context(), roundID)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, questions)
}

func (api *ApiHandler) ListForAdmin(w http.ResponseWriter, r *http.Request) {
	roundID, err := handlers.PathID(r, "roundId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	questions, err := api.QuestionService.ListForAdmin(r.Context(), roundID)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, questions)
}

func (api *ApiHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	roundID, err := handlers.PathID(r, "roundId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}
	var in question.QuestionInput
	if err := handlers.DecodeJSON(r, &in); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	q, err := api.QuestionService.CreateQuestion(r.Context(), roundID, in)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusCreated, q)
}

func (api *ApiHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := handlers.PathID(r, "questionId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}
	var in question.QuestionInput
	if err := handlers.DecodeJSON(r, &in); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	q, err := api.QuestionService.UpdateQuestion(r.Context(), questionID, in)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, q)
}

func (api *ApiHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := handlers.PathID(r, "questionId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	if err := api.QuestionService.DeleteQuestion(r.Context(), questionID); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (api *ApiHandler) AddTestCase(w http.ResponseWriter, r *http.Request) {
	questionID, err := handlers.PathID(r, "questionId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}
	var in question.TestCaseInput
	if err := handlers.DecodeJSON(r, &in); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	tc, err := api.QuestionService.AddTestCase(r.Context(), questionID, in)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusCreated, tc)
}

func (api *ApiHandler) UpdateTestCase(w http.ResponseWriter, r *http.Request) {
	testCaseID, err := handlers.PathID(r, "testCaseId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}
	var in question.TestCaseInput
	if err := handlers.DecodeJSON(r, &in); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	tc, err := api.QuestionService.UpdateTestCase(r.Context(), testCaseID, in)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, tc)
}

func (api *ApiHandler) DeleteTestCase(w http.ResponseWriter, r *http.Request) {
	testCaseID, err := handlers.PathID(r, "testCaseId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	if err := api.QuestionService.DeleteTestCase(r.Context(), testCaseID); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (api *ApiHandler) AddBuggyCode(w http.ResponseWriter, r *http.Request) {
	questionID, err := handlers.PathID(r, "questionId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}
	var in question.BuggyCodeInput
	if err := handlers.DecodeJSON(r, &in); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	bc, err := api.QuestionService.AddBuggyCode(r.Context(), questionID, in)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusCreated, bc)
}

func (api *ApiHandler) UpdateBuggyCode(w http.ResponseWriter, r *http.Request) {
	buggyCodeID, err := handlers.PathID(r, "buggyCodeId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}
	var in question.BuggyCodeInput
	if err := handlers.DecodeJSON(r, &in); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	bc, err := api.QuestionService.UpdateBuggyCode(r.Context(), buggyCodeID, in)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, bc)
}

func (api *ApiHandler) DeleteBuggyCode(w http.ResponseWriter, r *http.Request) {
	buggyCodeID, err := handlers.PathID(r, "buggyCodeId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	if err := api.QuestionService.DeleteBuggyCode(r.Context(), buggyCodeID); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
