package funding

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CompetenciaDTO struct {
	Competencia string `json:"competencia"`
	Ano         string `json:"ano"`
	Mes         string `json:"mes"`
	Timestamp   string `json:"timestamp"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetDados handles GET /api/financiamento/dados/{codigoIbge}/{competencia}.
func (h *Handler) GetDados(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	codigoIbge := vars["codigoIbge"]
	competencia := vars["competencia"]

	if err := ValidateCodigoIbge(codigoIbge); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ValidateCompetencia(competencia); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	forceRefresh := r.URL.Query().Has("forceRefresh")

	snapshot, err := h.service.Consultar(r.Context(), codigoIbge, competencia, forceRefresh)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "no funding data for the requested municipality and competência", http.StatusNotFound)
			return
		}
		log.Errorf("failed to consult funding data: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetLatestCompetencia handles GET /api/financiamento/competencia/latest.
func (h *Handler) GetLatestCompetencia(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	competencia, err := h.service.LatestCompetencia(r.Context())
	if err != nil {
		log.Errorf("failed to find latest competência: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	dto := CompetenciaDTO{
		Competencia: competencia,
		Ano:         competencia[:4],
		Mes:         competencia[4:],
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ValidateCodigoIbge checks the municipality code format: at least 6 digits.
func ValidateCodigoIbge(codigoIbge string) error {
	if len(codigoIbge) < 6 {
		return fmt.Errorf("codigo IBGE must have at least 6 digits")
	}
	if _, err := strconv.Atoi(codigoIbge); err != nil {
		return fmt.Errorf("codigo IBGE must be numeric")
	}
	return nil
}

// ValidateCompetencia checks the AAAAMM competência format and plausible range.
func ValidateCompetencia(competencia string) error {
	if len(competencia) != 6 {
		return fmt.Errorf("competência must be in AAAAMM format")
	}
	n, err := strconv.Atoi(competencia)
	if err != nil {
		return fmt.Errorf("competência must be numeric")
	}
	ano := n / 100
	mes := n % 100
	if ano < 2020 || ano > 2030 {
		return fmt.Errorf("competência year must be between 2020 and 2030")
	}
	if mes < 1 || mes > 12 {
		return fmt.Errorf("competência month must be between 01 and 12")
	}
	return nil
}
