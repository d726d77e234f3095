package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain"
	"github.com/shelfsync/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service *usecase.ReconcileService
	index   domain.CandidateIndex
}

// NewHandler creates a new HTTP handler
func NewHandler(service *usecase.ReconcileService, index domain.CandidateIndex) *Handler {
	return &Handler{
		service: service,
		index:   index,
	}
}

// compareRequest is the JSON body for a single record comparison
type compareRequest struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Allergens     []string `json:"allergens"`
	QuantityValue float64  `json:"quantityValue"`
	QuantityUnit  string   `json:"quantityUnit"`
}

// batchRequest is the JSON body for a batch comparison
type batchRequest struct {
	Records []compareRequest `json:"records" binding:"required"`
}

// batchResponse carries per-record results plus batch-level counts
type batchResponse struct {
	BatchID          string               `json:"batchId"`
	Results          []domain.MatchResult `json:"results"`
	TotalRecords     int                  `json:"totalRecords"`
	MatchedCount     int                  `json:"matchedCount"`
	UnmatchedCount   int                  `json:"unmatchedCount"`
	DiscrepancyCount int                  `json:"discrepancyCount"`
	ErrorCount       int                  `json:"errorCount"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shelfsync-backend",
		"version": "1.0.0",
	})
}

// CompareRecord matches one imported record against the loaded catalog
func (h *Handler) CompareRecord(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	imported, ok := req.toRecord()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "record needs a code or a name"})
		return
	}

	result := h.service.Compare(c.Request.Context(), imported, h.index)
	c.JSON(http.StatusOK, result)
}

// CompareBatch matches a list of imported records. Records are independent:
// a failed record yields a result with status error, never aborts the batch.
func (h *Handler) CompareBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch contains no records"})
		return
	}

	resp := batchResponse{
		BatchID:      uuid.NewString(),
		Results:      make([]domain.MatchResult, 0, len(req.Records)),
		TotalRecords: len(req.Records),
	}

	for _, record := range req.Records {
		imported, ok := record.toRecord()
		if !ok {
			resp.Results = append(resp.Results, domain.MatchResult{
				Status:        domain.StatusError,
				FailureReason: domain.ErrInvalidRecord.Error(),
			})
			resp.ErrorCount++
			continue
		}

		result := h.service.Compare(c.Request.Context(), imported, h.index)
		resp.Results = append(resp.Results, *result)

		switch result.Status {
		case domain.StatusMatched, domain.StatusMultipleMatches:
			resp.MatchedCount++
		case domain.StatusDiscrepancy:
			resp.DiscrepancyCount++
			resp.MatchedCount++
		case domain.StatusError:
			resp.ErrorCount++
		default:
			resp.UnmatchedCount++
		}
	}

	c.JSON(http.StatusOK, resp)
}

// toRecord converts the request body to a domain record, rejecting records
// with neither a code nor a name
func (r compareRequest) toRecord() (domain.ImportedRecord, bool) {
	if strings.TrimSpace(r.Code) == "" && strings.TrimSpace(r.Name) == "" {
		return domain.ImportedRecord{}, false
	}
	return domain.ImportedRecord{
		Code:          r.Code,
		Name:          r.Name,
		Brand:         r.Brand,
		Category:      r.Category,
		Allergens:     r.Allergens,
		QuantityValue: r.QuantityValue,
		QuantityUnit:  r.QuantityUnit,
	}, true
}
