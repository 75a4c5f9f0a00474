package app

import (
	"database/sql"
	"time"

	"github.com/davisxavier1984/papprefeito/internal/auth"
	"github.com/davisxavier1984/papprefeito/internal/config"
	"github.com/davisxavier1984/papprefeito/internal/utils"
	"github.com/davisxavier1984/papprefeito/pkg/autosave"
	"github.com/davisxavier1984/papprefeito/pkg/dashboard"
	"github.com/davisxavier1984/papprefeito/pkg/editedlosses"
	"github.com/davisxavier1984/papprefeito/pkg/funding"
	"github.com/davisxavier1984/papprefeito/pkg/municipality"
	"github.com/davisxavier1984/papprefeito/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	AuthService auth.Service
	AuthHandler *auth.Handler

	FundingClient  funding.Client
	FundingService funding.Service
	FundingHandler *funding.Handler

	MunicipalityService municipality.Service
	MunicipalityHandler *municipality.Handler

	EditedLossesRepo    editedlosses.Repo
	EditedLossesService editedlosses.Service
	EditedLossesHandler *editedlosses.Handler

	AutosaveCache     *autosave.RecordCache
	DashboardRegistry *dashboard.Registry
	CsvRenderer       *dashboard.CsvRendererImpl
	DashboardHandler  *dashboard.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewService(user.NewRepo(db), deps.Clock)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.AuthService = auth.NewService(auth.NewSessionRepo(db), deps.UserService, deps.Clock, cfg.Auth)
	deps.AuthHandler = auth.NewHandler(deps.AuthService, deps.UserService)

	deps.FundingClient = funding.NewClient(cfg.SaudeAPI.BaseURL, time.Duration(cfg.SaudeAPI.TimeoutSeconds)*time.Second)
	deps.FundingService = funding.NewService(deps.FundingClient, deps.Clock)
	deps.FundingHandler = funding.NewHandler(deps.FundingService)

	ibgeClient := municipality.NewClient(cfg.IBGE.BaseURL, time.Duration(cfg.IBGE.TimeoutSeconds)*time.Second)
	deps.MunicipalityService = municipality.NewService(ibgeClient)
	deps.MunicipalityHandler = municipality.NewHandler(deps.MunicipalityService)

	deps.EditedLossesRepo = editedlosses.NewRepo(db)
	deps.EditedLossesService = editedlosses.NewService(deps.EditedLossesRepo, deps.Clock)
	deps.EditedLossesHandler = editedlosses.NewHandler(deps.EditedLossesService)

	deps.AutosaveCache = autosave.NewRecordCache()
	debounce := time.Duration(cfg.Autosave.DebounceMs) * time.Millisecond
	deps.DashboardRegistry = dashboard.NewRegistry(deps.EditedLossesService, deps.AutosaveCache, deps.Clock, debounce)
	deps.CsvRenderer = dashboard.NewCsvRenderer()
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardRegistry, deps.FundingService, deps.EditedLossesService, deps.CsvRenderer)

	return deps
}
