package breed

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/pkg/utils"
)

// CatalogSource 提供已加载的品种目录。
type CatalogSource interface {
	Catalog() (breed.Store, bool)
}

// Handler 品种目录的HTTP处理器
type Handler struct {
	catalog CatalogSource
}

// New 创建品种处理器
func New(catalog CatalogSource) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

// RegisterRoutes 注册品种相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/breeds", h.handleListBreeds)
	r.Get("/breeds/{key}", h.handleGetBreed)
}

// handleListBreeds 列出品种，可按物种过滤
func (h *Handler) handleListBreeds(w http.ResponseWriter, r *http.Request) {
	store, ok := h.catalog.Catalog()
	if !ok {
		utils.RespondError(w, http.StatusServiceUnavailable, "breed catalog is still loading")
		return
	}

	species := breed.Species(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("species"))))
	if species != "" && !species.Valid() {
		utils.RespondError(w, http.StatusBadRequest, "unknown species: "+string(species))
		return
	}

	utils.RespondJSON(w, http.StatusOK, store.BySpecies(species))
}

// handleGetBreed 查询单个品种
func (h *Handler) handleGetBreed(w http.ResponseWriter, r *http.Request) {
	store, ok := h.catalog.Catalog()
	if !ok {
		utils.RespondError(w, http.StatusServiceUnavailable, "breed catalog is still loading")
		return
	}

	profile, found := store.FindByKey(chi.URLParam(r, "key"))
	if !found {
		utils.RespondError(w, http.StatusNotFound, "breed not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, profile)
}
