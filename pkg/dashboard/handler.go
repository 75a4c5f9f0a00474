package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/davisxavier1984/papprefeito/pkg/editedlosses"
	"github.com/davisxavier1984/papprefeito/pkg/funding"
	"github.com/davisxavier1984/papprefeito/pkg/programs"
	"github.com/davisxavier1984/papprefeito/pkg/user"
)

type SelectionDTO struct {
	UF            *string `json:"uf,omitempty"`
	CodigoIbge    *string `json:"codigo_ibge,omitempty"`
	NomeMunicipio *string `json:"nome_municipio,omitempty"`
	Competencia   *string `json:"competencia,omitempty"`
}

type SetLossDTO struct {
	LineIndex int     `json:"line_index"`
	Value     float64 `json:"value"`
}

type SaveStatusDTO struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type StateDTO struct {
	Selection  Selection                   `json:"selection"`
	Rows       []ProcessedRow              `json:"dados_processados"`
	Summary    *FinancialSummary           `json:"resumo_financeiro,omitempty"`
	Programas  []programs.ProgramBreakdown `json:"programas,omitempty"`
	SaudeBucal *programs.DentalDetail      `json:"saude_bucal,omitempty"`
	SaveStatus SaveStatusDTO               `json:"save_status"`
}

type Handler struct {
	registry       *Registry
	fundingService funding.Service
	editedService  editedlosses.Service
	renderer       CsvRenderer
}

func NewHandler(registry *Registry, fundingService funding.Service, editedService editedlosses.Service, renderer CsvRenderer) *Handler {
	return &Handler{
		registry:       registry,
		fundingService: fundingService,
		editedService:  editedService,
		renderer:       renderer,
	}
}

func (h *Handler) session(r *http.Request) (*Session, error) {
	userID, err := user.CurrentId(r.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return h.registry.Session(userID), nil
}

// GetState handles GET /api/dashboard.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	session, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stateDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateSelection handles PUT /api/dashboard/selection. Fields are applied in
// UF, municipality, competência order; each change clears derived state.
func (h *Handler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	session, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var dto SelectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if dto.UF != nil {
		session.Store.SelectUF(*dto.UF)
	}
	if dto.CodigoIbge != nil {
		nome := ""
		if dto.NomeMunicipio != nil {
			nome = *dto.NomeMunicipio
		}
		session.Store.SelectMunicipio(*dto.CodigoIbge, nome)
	}
	if dto.Competencia != nil {
		if err := funding.ValidateCompetencia(*dto.Competencia); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		session.Store.SelectCompetencia(*dto.Competencia)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stateDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Consultar handles POST /api/dashboard/consultar: fetches the funding data
// for the current selection and loads any previously saved edits. A selection
// that was never edited starts from zeroed losses.
func (h *Handler) Consultar(w http.ResponseWriter, r *http.Request) {
	log.Debug("Consulting funding data for dashboard selection")
	w.Header().Set("Content-Type", "application/json")
	session, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	selection := session.Store.Selection()
	if selection.CodigoIbge == "" || selection.Competencia == "" {
		http.Error(w, "municipality and competência must be selected first", http.StatusBadRequest)
		return
	}

	forceRefresh := r.URL.Query().Has("forceRefresh")
	snapshot, err := h.fundingService.Consultar(r.Context(), selection.CodigoIbge, selection.Competencia, forceRefresh)
	if err != nil {
		if errors.Is(err, funding.ErrNotFound) {
			http.Error(w, "no funding data for the requested municipality and competência", http.StatusNotFound)
			return
		}
		log.Errorf("failed to consult funding data: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if err := session.Store.IngestSnapshot(r.Context(), snapshot); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	record, err := h.editedService.Get(r.Context(), selection.CodigoIbge, selection.Competencia)
	if err != nil && !errors.Is(err, editedlosses.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if errors.Is(err, editedlosses.ErrNotFound) {
		record = editedlosses.EditedMunicipality{
			CodigoIbge:         selection.CodigoIbge,
			Competencia:        selection.Competencia,
			PercaRecursoMensal: make([]float64, len(snapshot.Resumos)),
		}
	}
	if err := session.Store.IngestEditedLosses(record); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stateDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SetLoss handles PUT /api/dashboard/perda. The edit is applied and the
// debounced save is scheduled; the response carries the recomputed state.
func (h *Handler) SetLoss(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	session, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var dto SetLossDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := session.Store.SetLossValue(r.Context(), dto.LineIndex, dto.Value); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stateDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetSaveStatus handles GET /api/dashboard/save-status.
func (h *Handler) GetSaveStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	session, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(saveStatusDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ExportCsv handles GET /api/dashboard/export/csv.
func (h *Handler) ExportCsv(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	rows := session.Store.Rows()
	summary, ok := session.Store.Summary()
	if !ok {
		http.Error(w, "no data loaded for the current selection", http.StatusConflict)
		return
	}

	report, err := h.renderer.RenderReport(session.Store.Selection(), rows, summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\"relatorio-financiamento.csv\"")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func stateDTO(session *Session) StateDTO {
	state := StateDTO{
		Selection:  session.Store.Selection(),
		Rows:       session.Store.Rows(),
		Programas:  session.Store.Programs(),
		SaudeBucal: session.Store.DentalDetail(),
		SaveStatus: saveStatusDTO(session),
	}
	if summary, ok := session.Store.Summary(); ok {
		state.Summary = &summary
	}
	return state
}

func saveStatusDTO(session *Session) SaveStatusDTO {
	dto := SaveStatusDTO{Status: string(session.Sync.Status())}
	if err := session.Sync.Err(); err != nil {
		dto.Error = err.Error()
	}
	return dto
}
