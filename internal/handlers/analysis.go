package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/internal/margin"
	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

// AnalysisHandler exposes the margin discovery runs over HTTP.
type AnalysisHandler struct {
	queries           *db.Queries
	rater             margin.Quoter
	runs              *margin.RunRegistry
	defaultBatchSize  int
	defaultBatchDelay time.Duration
}

func NewAnalysisHandler(queries *db.Queries, rater margin.Quoter, runs *margin.RunRegistry, batchSize int, batchDelay time.Duration) *AnalysisHandler {
	return &AnalysisHandler{
		queries:           queries,
		rater:             rater,
		runs:              runs,
		defaultBatchSize:  batchSize,
		defaultBatchDelay: batchDelay,
	}
}

type StartRunRequest struct {
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	CustomerName         string   `json:"customer_name,omitempty"`
	TargetCarrierID      string   `json:"target_carrier_id"`
	CompetitorCarrierIDs []string `json:"competitor_carrier_ids,omitempty"`
	CompetitorGroupID    string   `json:"competitor_group_id,omitempty"`
	BatchSize            int      `json:"batch_size,omitempty"`
	BatchDelayMs         int      `json:"batch_delay_ms,omitempty"`
}

type StartRunResponse struct {
	RunID string `json:"run_id"`
}

// StartRun validates the run configuration, loads the inputs, and kicks
// off the engine in the background. Configuration problems are reported
// up front with a 400; the run never starts.
func (h *AnalysisHandler) StartRun(c echo.Context) error {
	var req StartRunRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.StartDate == "" || req.EndDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Date range is required")
	}
	if req.TargetCarrierID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Target carrier is required")
	}

	ctx := c.Request().Context()

	if len(req.CompetitorCarrierIDs) == 0 {
		if req.CompetitorGroupID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Competitor group or carrier list is required")
		}
		if _, err := h.queries.GetCarrierGroup(ctx, req.CompetitorGroupID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return echo.NewHTTPError(http.StatusBadRequest, "Unknown competitor group")
			}
			slog.Error("failed to look up carrier group", "error", err, "group_id", req.CompetitorGroupID)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up carrier group")
		}
	}

	shipments, err := margin.LoadShipments(ctx, h.queries, req.StartDate, req.EndDate, req.CustomerName)
	if err != nil {
		slog.Error("failed to load shipments", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load shipments")
	}
	if len(shipments) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No shipments found in the selected date range")
	}

	marginRows, err := h.queries.ListCustomerMargins(ctx)
	if err != nil {
		slog.Error("failed to load margin table", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load margin table")
	}

	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = h.defaultBatchSize
	}
	batchDelay := time.Duration(req.BatchDelayMs) * time.Millisecond
	if batchDelay <= 0 {
		batchDelay = h.defaultBatchDelay
	}

	pricer := margin.NewPricer(h.rater, margin.NewMarginTable(marginRows),
		req.TargetCarrierID, req.CompetitorCarrierIDs, req.CompetitorGroupID)
	engine := margin.NewEngine(pricer, batchSize, batchDelay)

	run := h.runs.Start(engine, shipments)
	slog.Info("margin run started",
		"run_id", run.ID,
		"shipments", len(shipments),
		"target_carrier", req.TargetCarrierID,
		"batch_size", batchSize,
	)

	return c.JSON(http.StatusAccepted, StartRunResponse{RunID: run.ID})
}

// GetRun returns the run's current status, and the full report once the
// run has finished.
func (h *AnalysisHandler) GetRun(c echo.Context) error {
	run, ok := h.runs.Snapshot(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Run not found")
	}
	return c.JSON(http.StatusOK, run)
}

// GetRunReport returns the flattened, export-ready rows for a finished
// run.
func (h *AnalysisHandler) GetRunReport(c echo.Context) error {
	run, ok := h.runs.Snapshot(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Run not found")
	}
	if run.Report == nil {
		return echo.NewHTTPError(http.StatusConflict, "Run is still in progress")
	}
	return c.JSON(http.StatusOK, margin.FlattenReport(run.Report))
}

// CancelRun requests cancellation; in-flight shipments finish but their
// results are discarded.
func (h *AnalysisHandler) CancelRun(c echo.Context) error {
	if !h.runs.Cancel(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "Run not found")
	}
	return c.NoContent(http.StatusNoContent)
}

type CarrierGroupResponse struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Carriers []CarrierInfo `json:"carriers"`
}

type CarrierInfo struct {
	CarrierID   string `json:"carrier_id"`
	CarrierCode string `json:"carrier_code"`
	CarrierName string `json:"carrier_name"`
}

// ListCarrierGroups returns the carrier group catalog with member
// carriers, for populating run configuration.
func (h *AnalysisHandler) ListCarrierGroups(c echo.Context) error {
	ctx := c.Request().Context()

	groups, err := h.queries.ListCarrierGroups(ctx)
	if err != nil {
		slog.Error("failed to list carrier groups", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list carrier groups")
	}

	resp := make([]CarrierGroupResponse, 0, len(groups))
	for _, group := range groups {
		carriers, err := h.queries.ListCarriersByGroup(ctx, group.ID)
		if err != nil {
			slog.Error("failed to list carriers", "error", err, "group_id", group.ID)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list carriers")
		}

		groupResp := CarrierGroupResponse{ID: group.ID, Name: group.Name, Carriers: []CarrierInfo{}}
		for _, carrier := range carriers {
			groupResp.Carriers = append(groupResp.Carriers, CarrierInfo{
				CarrierID:   carrier.ID,
				CarrierCode: carrier.CarrierCode,
				CarrierName: carrier.CarrierName,
			})
		}
		resp = append(resp, groupResp)
	}

	return c.JSON(http.StatusOK, resp)
}
