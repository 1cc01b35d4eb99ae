package leaderboard

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/services/leaderboard"
	"gitlab.com/bugfix-arena.net/internal/handlers"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

type ApiHandler struct {
	LeaderboardService leaderboard.ILeaderboardService
	defaultLimit       int
	logger             primary.Logger
}

func NewHandler(leaderboardService leaderboard.ILeaderboardService, defaultLimit int, logger primary.Logger) *ApiHandler {
	return &ApiHandler{
		LeaderboardService: leaderboardService,
		defaultLimit:       defaultLimit,
		logger:             logger,
	}
}

func (api *ApiHandler) Register(participant *mux.Router) {
	participant.HandleFunc("/rounds/{roundId}/leaderboard", api.RoundBoard).Methods(http.MethodGet)
	participant.HandleFunc("/leaderboard/competition", api.CompetitionBoard).Methods(http.MethodGet)
}

func (api *ApiHandler) RoundBoard(w http.ResponseWriter, r *http.Request) {
	roundID, err := handlers.PathID(r, "roundId")
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	board, err := api.LeaderboardService.RoundBoard(r.Context(), roundID)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, board)
}

func (api *ApiHandler) CompetitionBoard(w http.ResponseWriter, r *http.Request) {
	limit := api.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handlers.ResponseServiceError(w, api.logger, fmt.Errorf("%w: invalid limit", errs.ErrValidation))
			return
		}
		limit = n
	}

	entries, err := api.LeaderboardService.CompetitionBoard(r.Context(), limit)
	if err != nil {
		handlers.ResponseServiceError(w, api.logger, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}
