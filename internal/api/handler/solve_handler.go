package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"playex_v2/internal/api/middleware"
	"playex_v2/internal/app/service"
	"playex_v2/internal/common"

	"github.com/go-chi/chi/v5"
)

type SolveHandler struct {
	solveService    *service.SolveService
	identityService *service.IdentityService
}

func NewSolveHandler(solveService *service.SolveService, identityService *service.IdentityService) *SolveHandler {
	return &SolveHandler{solveService: solveService, identityService: identityService}
}

func (h *SolveHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.OptionalIdentity)
	r.Post("/", h.solve) // POST /api/v1/solve
}

type solveRequest struct {
	ProblemID  string `json:"problem_id"`
	Answer     string `json:"answer"`
	TelegramID *int64 `json:"tg_id,omitempty"`
}

// solve resolves the actor first (JWT > tg_id body field > X-Telegram-ID
// header > guest) and then hands the submission to the ledger.
func (h *SolveHandler) solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	ref := service.IdentityRef{}
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		ref.UserID = userID
	} else if req.TelegramID != nil {
		ref.TelegramID = req.TelegramID
	} else if header := r.Header.Get("X-Telegram-ID"); header != "" {
		tgID, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid X-Telegram-ID header")
			return
		}
		ref.TelegramID = &tgID
	}

	user, err := h.identityService.Resolve(r.Context(), ref)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	result, err := h.solveService.Solve(r.Context(), user, service.SolveRequest{
		ProblemID: req.ProblemID,
		Answer:    req.Answer,
	})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}
