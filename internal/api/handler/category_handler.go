package handler

import (
	"net/http"

	"playex_v2/internal/app/service"
	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	catalogService *service.CatalogService
}

func NewCategoryHandler(catalogService *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCategories) // GET /api/v1/categories?subject=math
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	subject := model.Subject(r.URL.Query().Get("subject"))

	categories, err := h.catalogService.ListCategories(r.Context(), subject)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type CategoriesResponse struct {
		Categories []model.Category `json:"categories"`
	}
	common.RespondWithJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}
