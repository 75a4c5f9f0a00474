package app

import (
	"github.com/gorilla/mux"

	"github.com/davisxavier1984/papprefeito/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Authentication
	r.HandleFunc("/api/auth/login", deps.AuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/refresh", deps.AuthHandler.Refresh).Methods("POST")
	r.HandleFunc("/api/auth/logout", deps.AuthHandler.Logout).Methods("POST")
	r.HandleFunc("/api/auth/me", deps.AuthHandler.Me).Methods("GET")

	// User management (admin)
	r.HandleFunc("/api/users", deps.UserHandler.Create).Methods("POST")
	r.HandleFunc("/api/users", deps.UserHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/users/{userId}", deps.UserHandler.Update).Methods("PUT")
	r.HandleFunc("/api/users/{userId}", deps.UserHandler.Delete).Methods("DELETE")

	// Municipality catalog
	r.HandleFunc("/api/ufs", deps.MunicipalityHandler.GetUFs).Methods("GET")
	r.HandleFunc("/api/municipios/{uf}", deps.MunicipalityHandler.GetMunicipalities).Methods("GET")

	// Funding data
	r.HandleFunc("/api/financiamento/competencia/latest", deps.FundingHandler.GetLatestCompetencia).Methods("GET")
	r.HandleFunc("/api/financiamento/dados/{codigoIbge}/{competencia}", deps.FundingHandler.GetDados).Methods("GET")

	// Edited municipality records
	r.HandleFunc("/api/municipios-editados", deps.EditedLossesHandler.Save).Methods("POST")
	r.HandleFunc("/api/municipios-editados", deps.EditedLossesHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/municipios-editados/{codigoIbge}/{competencia}", deps.EditedLossesHandler.Get).Methods("GET")
	r.HandleFunc("/api/municipios-editados/{codigoIbge}/{competencia}", deps.EditedLossesHandler.Update).Methods("PUT")
	r.HandleFunc("/api/municipios-editados/{codigoIbge}/{competencia}", deps.EditedLossesHandler.Delete).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetState).Methods("GET")
	r.HandleFunc("/api/dashboard/selection", deps.DashboardHandler.UpdateSelection).Methods("PUT")
	r.HandleFunc("/api/dashboard/consultar", deps.DashboardHandler.Consultar).Methods("POST")
	r.HandleFunc("/api/dashboard/perda", deps.DashboardHandler.SetLoss).Methods("PUT")
	r.HandleFunc("/api/dashboard/save-status", deps.DashboardHandler.GetSaveStatus).Methods("GET")
	r.HandleFunc("/api/dashboard/export/csv", deps.DashboardHandler.ExportCsv).Methods("GET")
}
