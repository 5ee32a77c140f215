package controllers

import (
	"context"
	"net/http"
	"time"

	"bookstore/models"
	"bookstore/services/sales"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type SalesService interface {
	Report(ctx context.Context, start, end time.Time) (*models.SalesReport, error)
}

type SalesController struct {
	svc SalesService
	log zerolog.Logger
}

func NewSalesController(svc SalesService, log zerolog.Logger) *SalesController {
	return &SalesController{svc: svc, log: log}
}

// SalesReport expects startDate and endDate query parameters.
func (h *SalesController) SalesReport(c *gin.Context) {
	start, end, err := sales.ParseRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	report, err := h.svc.Report(ctx, start, end)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
