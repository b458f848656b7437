package handler

import (
	"net/http"

	"playex_v2/internal/app/service"
	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type ProblemHandler struct {
	catalogService *service.CatalogService
}

func NewProblemHandler(catalogService *service.CatalogService) *ProblemHandler {
	return &ProblemHandler{catalogService: catalogService}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProblems)          // GET /api/v1/problems
	r.Get("/random", h.randomProblem)   // GET /api/v1/problems/random?subject=math
	r.Get("/{problemID}", h.getProblem) // GET /api/v1/problems/{id}
}

func (h *ProblemHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProblemFilter{
		Subject:    model.Subject(r.URL.Query().Get("subject")),
		Difficulty: model.ProblemDifficulty(r.URL.Query().Get("difficulty")),
		CategoryID: r.URL.Query().Get("category_id"),
	}

	problems, err := h.catalogService.ListProblems(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type ProblemsResponse struct {
		Problems []model.Problem `json:"problems"`
		Total    int             `json:"total"`
	}
	common.RespondWithJSON(w, http.StatusOK, ProblemsResponse{Problems: problems, Total: len(problems)})
}

func (h *ProblemHandler) randomProblem(w http.ResponseWriter, r *http.Request) {
	subject := model.Subject(r.URL.Query().Get("subject"))
	categoryID := r.URL.Query().Get("category_id")

	problem, err := h.catalogService.RandomProblem(r.Context(), subject, categoryID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	problemID := chi.URLParam(r, "problemID")

	problem, err := h.catalogService.GetProblem(r.Context(), problemID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}
