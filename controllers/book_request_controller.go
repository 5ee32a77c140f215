package controllers

import (
	"context"
	"net/http"

	"bookstore/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type BookRequestService interface {
	Create(ctx context.Context, userID string, req models.BookRequestReq) (*models.BookRequest, error)
	ForUser(ctx context.Context, userID string) ([]models.BookRequest, error)
	All(ctx context.Context) ([]models.BookRequestDetail, error)
	SetStatus(ctx context.Context, id, status string) (*models.BookRequest, error)
}

type BookRequestController struct {
	svc BookRequestService
	log zerolog.Logger
}

func NewBookRequestController(svc BookRequestService, log zerolog.Logger) *BookRequestController {
	return &BookRequestController{svc: svc, log: log}
}

func (h *BookRequestController) RequestBook(c *gin.Context) {
	var req models.BookRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindMessage(err))
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	br, err := h.svc.Create(ctx, userID(c), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Book request submitted successfully", "request": br})
}

func (h *BookRequestController) UserRequests(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reqs, err := h.svc.ForUser(ctx, userID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

func (h *BookRequestController) AllRequests(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reqs, err := h.svc.All(ctx)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

func (h *BookRequestController) UpdateRequestStatus(c *gin.Context) {
	var req models.RequestStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	br, err := h.svc.SetStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request status updated", "request": br})
}
