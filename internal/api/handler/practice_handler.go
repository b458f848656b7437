package handler

import (
	"encoding/json"
	"net/http"

	"playex_v2/internal/api/middleware"
	"playex_v2/internal/app/service"
	"playex_v2/internal/common"

	"github.com/go-chi/chi/v5"
)

type PracticeHandler struct {
	practiceService *service.PracticeService
	identityService *service.IdentityService
}

func NewPracticeHandler(practiceService *service.PracticeService, identityService *service.IdentityService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService, identityService: identityService}
}

func (h *PracticeHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.OptionalIdentity)
	r.Post("/start", h.start)
	r.Get("/{sessionID}", h.get)
	r.Post("/{sessionID}/answer", h.answer)
	r.Post("/{sessionID}/finish", h.finish)
}

func (h *PracticeHandler) start(w http.ResponseWriter, r *http.Request) {
	var req service.StartPracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	ref := service.IdentityRef{}
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		ref.UserID = userID
	}
	user, err := h.identityService.Resolve(r.Context(), ref)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	resp, err := h.practiceService.Start(r.Context(), user, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *PracticeHandler) get(w http.ResponseWriter, r *http.Request) {
	session, err := h.practiceService.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, session)
}

func (h *PracticeHandler) answer(w http.ResponseWriter, r *http.Request) {
	var req service.PracticeAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.practiceService.Answer(r.Context(), chi.URLParam(r, "sessionID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *PracticeHandler) finish(w http.ResponseWriter, r *http.Request) {
	summary, err := h.practiceService.Finish(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, summary)
}
