package controllers

import (
	"context"
	"net/http"
	"time"

	"bookstore/middleware"
	"bookstore/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterReq) (*models.User, error)
	SignIn(ctx context.Context, req models.LoginReq) (*models.User, string, error)
	Logout(ctx context.Context, rawToken string, expiresAt time.Time) error
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateAddress(ctx context.Context, userID, address string) (*models.User, error)
}

type AuthController struct {
	svc AuthService
	log zerolog.Logger
}

func NewAuthController(svc AuthService, log zerolog.Logger) *AuthController {
	return &AuthController{svc: svc, log: log}
}

func (h *AuthController) Register(c *gin.Context) {
	var req models.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindMessage(err))
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.svc.Register(ctx, req); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sign-up successful"})
}

func (h *AuthController) SignIn(c *gin.Context) {
	var req models.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid email or password")
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, tok, err := h.svc.SignIn(ctx, req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sign-in successful",
		"id":      u.ID.Hex(),
		"role":    u.Role,
		"token":   tok,
	})
}

func (h *AuthController) Logout(c *gin.Context) {
	exp, ok := c.Get(middleware.CtxTokenExp)
	expiresAt, _ := exp.(time.Time)
	if !ok || expiresAt.IsZero() {
		expiresAt = time.Now().Add(72 * time.Hour)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.svc.Logout(ctx, c.GetString(middleware.CtxToken), expiresAt); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthController) GetUserInfo(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.svc.Profile(ctx, userID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AuthController) UpdateAddress(c *gin.Context) {
	var req models.UpdateAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Address is required")
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.svc.UpdateAddress(ctx, userID(c), req.Address)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully", "user": u})
}
