package controllers

import (
	"context"
	"net/http"

	"bookstore/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ShelfService interface {
	AddToCart(ctx context.Context, userID, bookID string, quantity int) error
	RemoveFromCart(ctx context.Context, userID, bookID string) error
	Cart(ctx context.Context, userID string) ([]models.Book, error)
	AddFavourite(ctx context.Context, userID, bookID string) error
	RemoveFavourite(ctx context.Context, userID, bookID string) error
	Favourites(ctx context.Context, userID string) ([]models.Book, error)
}

// CartController serves both the cart and the favourites list.
type CartController struct {
	svc ShelfService
	log zerolog.Logger
}

func NewCartController(svc ShelfService, log zerolog.Logger) *CartController {
	return &CartController{svc: svc, log: log}
}

func (h *CartController) AddToCart(c *gin.Context) {
	var req models.CartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bookId is required")
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.svc.AddToCart(ctx, userID(c), req.BookID, req.Quantity); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Book added to cart"})
}

func (h *CartController) RemoveFromCart(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.svc.RemoveFromCart(ctx, userID(c), c.Param("bookid")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Book removed from cart"})
}

func (h *CartController) GetCart(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	books, err := h.svc.Cart(ctx, userID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": books})
}

func (h *CartController) AddFavourite(c *gin.Context) {
	var req models.FavouriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bookId is required")
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.svc.AddFavourite(ctx, userID(c), req.BookID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Book added to favourites"})
}

func (h *CartController) RemoveFavourite(c *gin.Context) {
	var req models.FavouriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bookId is required")
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.svc.RemoveFavourite(ctx, userID(c), req.BookID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Book removed from favourites"})
}

func (h *CartController) GetFavourites(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	books, err := h.svc.Favourites(ctx, userID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": books})
}
