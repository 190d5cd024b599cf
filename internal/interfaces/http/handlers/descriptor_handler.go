package handlers

import (
	stderrors "errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// DescriptorHandlerConfig bounds compute requests.
type DescriptorHandlerConfig struct {
	MaxRecords   int
	MaxBodyBytes int64
}

// DescriptorHandler exposes the registry and in-memory batch computation.
type DescriptorHandler struct {
	svc    pipeline.Service
	logger logging.Logger
	cfg    DescriptorHandlerConfig
}

// NewDescriptorHandler creates a DescriptorHandler.
func NewDescriptorHandler(svc pipeline.Service, logger logging.Logger, cfg DescriptorHandlerConfig) *DescriptorHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 5000
	}
	return &DescriptorHandler{svc: svc, logger: logger, cfg: cfg}
}

// DescriptorListResponse is the body of GET /api/v1/descriptors.
type DescriptorListResponse struct {
	Version     string   `json:"version"`
	Fingerprint string   `json:"fingerprint"`
	Count       int      `json:"count"`
	Names       []string `json:"names"`
}

// ComputeRecord is one record of a compute request.
type ComputeRecord struct {
	SMILES string `json:"smiles"`
	Name   string `json:"name"`
}

// ComputeRequest is the body of POST /api/v1/descriptors/compute.
type ComputeRequest struct {
	Records []ComputeRecord `json:"records"`
}

// ComputeRow is one output row. Values follow Columns after the two
// identity columns; a failed descriptor is null.
type ComputeRow struct {
	Name   string     `json:"name"`
	SMILES string     `json:"smiles"`
	Values []*float64 `json:"values"`
}

// ComputeFailure identifies a dropped record by its 1-based position.
type ComputeFailure struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	SMILES string `json:"smiles"`
	Reason string `json:"reason"`
}

// ComputeResponse is the body of a successful compute request.
type ComputeResponse struct {
	Columns  []string         `json:"columns"`
	Rows     []ComputeRow     `json:"rows"`
	Failures []ComputeFailure `json:"failures"`
	Report   *pipeline.Report `json:"report"`
}

// List handles GET /api/v1/descriptors.
func (h *DescriptorHandler) List(c *gin.Context) {
	reg := h.svc.Registry()
	c.JSON(http.StatusOK, DescriptorListResponse{
		Version:     reg.Version(),
		Fingerprint: reg.Fingerprint(),
		Count:       reg.Len(),
		Names:       reg.Names(),
	})
}

// Compute handles POST /api/v1/descriptors/compute.
func (h *DescriptorHandler) Compute(c *gin.Context) {
	if h.cfg.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxBodyBytes)
	}

	var req ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeErrorStatus(c, h.logger, http.StatusRequestEntityTooLarge,
				errors.InvalidParam("request body too large").WithDetail(strconv.FormatInt(tooLarge.Limit, 10)+" bytes max"))
			return
		}
		writeError(c, h.logger, errors.InvalidParam("invalid request body").WithCause(err).WithDetail(err.Error()))
		return
	}
	if len(req.Records) == 0 {
		writeError(c, h.logger, errors.InvalidParam("records must not be empty"))
		return
	}
	if len(req.Records) > h.cfg.MaxRecords {
		writeError(c, h.logger, errors.InvalidParam("too many records").
			WithDetailf("%d records, %d max", len(req.Records), h.cfg.MaxRecords))
		return
	}

	records := make([]pipeline.InputRecord, len(req.Records))
	for i, r := range req.Records {
		records[i] = pipeline.InputRecord{RawIdentifier: r.SMILES, DisplayName: r.Name, Line: i + 1}
	}

	res, err := h.svc.Compute(c.Request.Context(), records)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.logger.Info("batch computed",
		logging.String("run_id", res.Report.RunID),
		logging.Int("total_rows", res.Report.TotalRows),
		logging.Int("survived", res.Report.Survived),
		logging.Int("dropped", res.Report.Dropped()),
		logging.Int("substituted_cells", res.Report.SubstitutedCells))
	c.JSON(http.StatusOK, toComputeResponse(res))
}

func toComputeResponse(res *pipeline.ComputeResult) ComputeResponse {
	resp := ComputeResponse{
		Columns:  res.Table.Columns,
		Rows:     make([]ComputeRow, len(res.Table.Rows)),
		Failures: make([]ComputeFailure, len(res.Failures)),
		Report:   res.Report,
	}
	for i, row := range res.Table.Rows {
		values := make([]*float64, len(row.Values))
		for j := range row.Values {
			if v := row.Values[j]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				values[j] = &v
			}
		}
		resp.Rows[i] = ComputeRow{Name: row.DisplayName, SMILES: row.RawIdentifier, Values: values}
	}
	for i, f := range res.Failures {
		resp.Failures[i] = ComputeFailure{
			Index:  f.Record.Line,
			Name:   f.Record.DisplayName,
			SMILES: f.Record.RawIdentifier,
			Reason: f.Reason,
		}
	}
	return resp
}

//Personal.AI order the ending
