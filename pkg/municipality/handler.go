package municipality

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetUFs handles GET /api/ufs.
func (h *Handler) GetUFs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ufs, err := h.service.ListUFs(r.Context())
	if err != nil {
		log.Errorf("failed to list federative units: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ufs); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetMunicipalities handles GET /api/municipios/{uf}.
func (h *Handler) GetMunicipalities(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uf := mux.Vars(r)["uf"]

	municipalities, err := h.service.ListMunicipalities(r.Context(), uf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(municipalities); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
