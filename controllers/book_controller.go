package controllers

import (
	"context"
	"net/http"

	"bookstore/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type CatalogService interface {
	Add(ctx context.Context, req models.BookReq) (*models.Book, error)
	Update(ctx context.Context, id string, req models.BookReq) (*models.Book, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]models.Book, error)
	Recent(ctx context.Context) ([]models.Book, error)
	ByID(ctx context.Context, id string) (*models.Book, error)
	Search(ctx context.Context, q, filter string) ([]models.Book, error)
}

type BookController struct {
	svc CatalogService
	log zerolog.Logger
}

func NewBookController(svc CatalogService, log zerolog.Logger) *BookController {
	return &BookController{svc: svc, log: log}
}

func (h *BookController) AddBook(c *gin.Context) {
	var req models.BookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindMessage(err))
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.svc.Add(ctx, req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Book added successfully", "data": b})
}

func (h *BookController) UpdateBook(c *gin.Context) {
	var req models.BookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindMessage(err))
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book updated successfully", "data": b})
}

func (h *BookController) DeleteBook(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

func (h *BookController) GetAllBooks(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	books, err := h.svc.All(ctx)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": books})
}

func (h *BookController) GetRecentBooks(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	books, err := h.svc.Recent(ctx)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": books})
}

func (h *BookController) GetBookByID(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.svc.ByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": b})
}

func (h *BookController) Search(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	books, err := h.svc.Search(ctx, c.Query("q"), c.Query("filter"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": books})
}
