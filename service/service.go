package service

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/internal/handlers"
	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/internal/margin"
	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/internal/rating"
	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage"
)

type Service struct {
	storage         *storage.Storage
	config          *Config
	ratingClient    *rating.Client
	runs            *margin.RunRegistry
	analysisHandler *handlers.AnalysisHandler
}

func New(storage *storage.Storage, config *Config) *Service {
	ratingClient := rating.NewClient(config.Rating.BaseURL, config.Rating.APIKey)
	if ratingClient.IsUsingMockData() {
		slog.Warn("no rating API key configured, serving mock quotes")
	}

	runs := margin.NewRunRegistry()
	analysisHandler := handlers.NewAnalysisHandler(
		storage.Queries,
		ratingClient,
		runs,
		config.Analysis.BatchSize,
		config.Analysis.BatchDelay,
	)

	return &Service{
		storage:         storage,
		config:          config,
		ratingClient:    ratingClient,
		runs:            runs,
		analysisHandler: analysisHandler,
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/carrier-groups", s.analysisHandler.ListCarrierGroups)
	api.POST("/margin-runs", s.analysisHandler.StartRun)
	api.GET("/margin-runs/:id", s.analysisHandler.GetRun)
	api.GET("/margin-runs/:id/report", s.analysisHandler.GetRunReport)
	api.DELETE("/margin-runs/:id", s.analysisHandler.CancelRun)
}
