package editedlosses

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EditedMunicipalityDTO struct {
	CodigoIbge         string    `json:"codigo_ibge"`
	Competencia        string    `json:"competencia"`
	PercaRecursoMensal []float64 `json:"perca_recurso_mensal"`
	DataEdicao         time.Time `json:"data_edicao,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /api/municipios-editados/{codigoIbge}/{competencia}.
// A municipality that was never edited yields an empty record with zeroed
// losses rather than an error, so first-time edits start from a clean sheet.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	codigoIbge := vars["codigoIbge"]
	competencia := vars["competencia"]

	record, err := h.service.Get(r.Context(), codigoIbge, competencia)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			record = EditedMunicipality{
				CodigoIbge:         codigoIbge,
				Competencia:        competencia,
				PercaRecursoMensal: []float64{},
			}
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(recordToDTO(record)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Save handles POST /api/municipios-editados.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving edited municipality record")
	w.Header().Set("Content-Type", "application/json")

	var dto EditedMunicipalityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.service.Save(r.Context(), EditedMunicipality{
		CodigoIbge:         dto.CodigoIbge,
		Competencia:        dto.Competencia,
		PercaRecursoMensal: dto.PercaRecursoMensal,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(recordToDTO(saved)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update handles PUT /api/municipios-editados/{codigoIbge}/{competencia}.
// The path identifies the record; the body carries the loss values.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var dto EditedMunicipalityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.service.Save(r.Context(), EditedMunicipality{
		CodigoIbge:         vars["codigoIbge"],
		Competencia:        vars["competencia"],
		PercaRecursoMensal: dto.PercaRecursoMensal,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(recordToDTO(saved)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetAll handles GET /api/municipios-editados.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	records, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EditedMunicipalityDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, recordToDTO(record))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete handles DELETE /api/municipios-editados/{codigoIbge}/{competencia}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deleted, err := h.service.Delete(r.Context(), vars["codigoIbge"], vars["competencia"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !deleted {
		http.Error(w, "edited municipality record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func recordToDTO(record EditedMunicipality) EditedMunicipalityDTO {
	losses := record.PercaRecursoMensal
	if losses == nil {
		losses = []float64{}
	}
	return EditedMunicipalityDTO{
		CodigoIbge:         record.CodigoIbge,
		Competencia:        record.Competencia,
		PercaRecursoMensal: losses,
		DataEdicao:         record.DataEdicao,
	}
}
