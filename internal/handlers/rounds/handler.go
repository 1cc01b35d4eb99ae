package rounds

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/services/round"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/handlers"
)

type transitionFunc func(ctx context.Context, roundID int64) (*domain.Round, error)

// ApiHandler serves rounds to participants and the round lifecycle to admins
type ApiHandler struct {
	RoundService round.IRoundService
	logger       primary.Logger
}

func NewHandler(roundService round.IRoundService, logger primary.Logger) *ApiHandler {
	return &ApiHandler{
		RoundService: roundService,
		logger:       logger,
	}
}

func (api *ApiHandler) Register(participant, admin *mux.Router) {
	participant.HandleFunc("/rounds", api.ListRounds).Methods(http.MethodGet)
	participant.HandleFunc("/rounds/{roundId}", api.GetRound).Methods(http.MethodGet)

	admin.HandleFunc("/rounds", api.CreateRound).Methods(http.MethodPost)
	admin.HandleFunc("/rounds/{roundId}", api.DeleteRound).Methods(http.MethodDelete)
	admin.HandleFunc("/rounds/{roundId}/lock", api.transition(api.RoundService.Lock)).Methods(http.MethodPut)
	admin.HandleFunc("/rounds/{roundId}/unlock", api.transition(api.RoundService.Unlock)).Methods(http.MethodPut)
	admin.HandleFunc("/rounds/{roundId}/start", api.transition(api.RoundService.Start)).Methods(http.MethodPut)
	admin.HandleFunc("/rounds/{roundId}/stop", api.transition(api.RoundService.Stop)).Methods(http.MethodPut)
	admin.HandleFunc("/rounds/{roundId}/complete", api.transition(api.RoundService.Complete)).Methods(http.MethodPut)
}

func (api *ApiHandler) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := api.RoundService.List(r.Context())
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, rounds)
}

func (api *ApiHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := handlers.PathID(r, "roundId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	rnd, err := api.RoundService.Get(r.Context(), roundID)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, rnd)
}

func (api *ApiHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	var cmd round.CreateRoundCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	rnd, err := api.RoundService.Create(r.Context(), cmd)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusCreated, rnd)
}

func (api *ApiHandler) DeleteRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := handlers.PathID(r, "roundId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	if err := api.RoundService.Delete(r.Context(), roundID); err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (api *ApiHandler) transition(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID, err := handlers.PathID(r, "roundId")
		if err != nil {
			handlers.ResponseServiceError(w, api.logger, err)
			return
		}

		rnd, err := fn(r.Context(), roundID)
		if err != nil {
			handlers.ResponseServiceError(w, api.logger, err)
			return
		}

		handlers.ResponseWithJson(w, http.StatusOK, rnd)
	}
}
