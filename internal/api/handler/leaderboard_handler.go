package handler

import (
	"net/http"

	"playex_v2/internal/app/service"
	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	userService *service.UserService
}

func NewLeaderboardHandler(userService *service.UserService) *LeaderboardHandler {
	return &LeaderboardHandler{userService: userService}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.leaderboard) // GET /api/v1/leaderboard
}

func (h *LeaderboardHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.userService.Leaderboard(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type LeaderboardResponse struct {
		Entries []model.LeaderboardEntry `json:"entries"`
	}
	common.RespondWithJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
}
