package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptosentinel/internal/market"
	"cryptosentinel/internal/service"
)

const defaultAsset = "bitcoin"

// Analysis is the service boundary the handlers call into.
type Analysis interface {
	AnalyzePrice(ctx context.Context, asset string) (*service.PriceAnalysis, error)
	AnalyzeVolume(ctx context.Context, asset, startDate, endDate string) (*service.VolumeAnalysis, error)
}

// AnalyzeHandler serves the two analysis endpoints.
type AnalyzeHandler struct {
	analyzer Analysis
}

// NewAnalyzeHandler creates the handler around an analysis service.
func NewAnalyzeHandler(analyzer Analysis) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// AnalyzeCrypto handles GET /api/analyze-crypto?stock_code=<asset>.
func (h *AnalyzeHandler) AnalyzeCrypto(c *gin.Context) {
	asset := c.Query("stock_code")
	if asset == "" {
		asset = defaultAsset
	}

	result, err := h.analyzer.AnalyzePrice(c.Request.Context(), asset)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeCryptoVolume handles
// GET /api/analyze-crypto-volume?coin_id=&start_date=&end_date=.
func (h *AnalyzeHandler) AnalyzeCryptoVolume(c *gin.Context) {
	coinID := c.Query("coin_id")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if coinID == "" || startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing coin_id, start_date or end_date parameter"})
		return
	}

	result, err := h.analyzer.AnalyzeVolume(c.Request.Context(), coinID, startDate, endDate)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// abortWithError maps the error taxonomy onto distinct status codes instead
// of collapsing everything into a 500.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, market.ErrUnsupportedAsset), errors.Is(err, market.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, market.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, market.ErrUpstream), errors.Is(err, market.ErrNarrative):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
