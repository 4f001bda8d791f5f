package handlers

import (
	"net/http"

	"restaurant-api/internal/api/utils"
	"restaurant-api/internal/logger"
	"restaurant-api/internal/model"
	"restaurant-api/internal/orchestration"
)

type RestaurantHandler struct {
	orch orchestration.RestaurantOrchestration
	log  logger.LoggerService
}

func NewRestaurantHandler(orch orchestration.RestaurantOrchestration, log logger.LoggerService) *RestaurantHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &RestaurantHandler{orch: orch, log: log}
}

// Register mounts every restaurant route on mux.
func (h *RestaurantHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/restaurant", h.GetAll)
	mux.HandleFunc("GET /api/restaurant/query", h.GetAllUsingQuery)
	mux.HandleFunc("POST /api/restaurant/find", h.Find)
	mux.HandleFunc("POST /api/restaurant/query/find", h.FindUsingQuery)
	mux.HandleFunc("GET /api/restaurant/{id}", h.Get)
	mux.HandleFunc("POST /api/restaurant", h.Insert)
	mux.HandleFunc("POST /api/restaurant/bulk", h.InsertMany)
	mux.HandleFunc("PUT /api/restaurant", h.Update)
}

func (h *RestaurantHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	writeList(w, h.orch.GetAll(r.Context()))
}

func (h *RestaurantHandler) GetAllUsingQuery(w http.ResponseWriter, r *http.Request) {
	writeList(w, h.orch.GetAllUsingQuery(r.Context()))
}

func (h *RestaurantHandler) Find(w http.ResponseWriter, r *http.Request) {
	var criteria model.SearchCriteria
	if !decodeBody(w, r, &criteria) {
		return
	}
	writeList(w, h.orch.Find(r.Context(), criteria.Name, criteria.Cuisine))
}

func (h *RestaurantHandler) FindUsingQuery(w http.ResponseWriter, r *http.Request) {
	var criteria model.SearchCriteria
	if !decodeBody(w, r, &criteria) {
		return
	}
	writeList(w, h.orch.FindUsingQuery(r.Context(), criteria.Name, criteria.Cuisine))
}

func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	rest := h.orch.Get(r.Context(), r.PathValue("id"))
	if !rest.Exists() {
		utils.WriteNotFound(w, "Restaurant not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, rest)
}

func (h *RestaurantHandler) Insert(w http.ResponseWriter, r *http.Request) {
	rest, ok := h.decodeRestaurant(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.orch.Insert(r.Context(), rest))
}

func (h *RestaurantHandler) InsertMany(w http.ResponseWriter, r *http.Request) {
	var rs []model.Restaurant
	if !decodeBody(w, r, &rs) {
		return
	}
	for i := range rs {
		rs[i].Normalize()
	}
	if err := model.ValidateAll(rs); err != nil {
		writeValidation(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.orch.InsertMany(r.Context(), rs))
}

func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	rest, ok := h.decodeRestaurant(w, r)
	if !ok {
		return
	}
	if !rest.Exists() {
		utils.WriteError(w, http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", map[string]any{"id": "is required"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.orch.Update(r.Context(), rest))
}

func (h *RestaurantHandler) decodeRestaurant(w http.ResponseWriter, r *http.Request) (model.Restaurant, bool) {
	rest := model.NewRestaurant()
	if !decodeBody(w, r, &rest) {
		return rest, false
	}
	rest.Normalize()
	if err := rest.Validate(); err != nil {
		writeValidation(w, err)
		return rest, false
	}
	return rest, true
}

func writeList(w http.ResponseWriter, rs []model.Restaurant) {
	if len(rs) == 0 {
		utils.WriteNotFound(w, "No restaurants found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, rs)
}

func writeValidation(w http.ResponseWriter, err error) {
	utils.WriteError(w, http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", model.FieldErrors(err))
}
