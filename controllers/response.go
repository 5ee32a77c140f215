package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookstore/apperror"
	"bookstore/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const requestTimeout = 10 * time.Second

var statusByCode = map[apperror.Code]int{
	apperror.BadInput:              http.StatusBadRequest,
	apperror.EmailTaken:            http.StatusBadRequest,
	apperror.InvalidCredentials:    http.StatusBadRequest,
	apperror.PaymentNotConfirmed:   http.StatusBadRequest,
	apperror.PaymentSessionInvalid: http.StatusBadRequest,
	apperror.EmptyOrder:            http.StatusBadRequest,
	apperror.EmptyCart:             http.StatusBadRequest,
	apperror.InvalidTransition:     http.StatusBadRequest,
	apperror.AlreadyExists:         http.StatusBadRequest,
	apperror.Unauthorized:          http.StatusUnauthorized,
	apperror.Forbidden:             http.StatusForbidden,
	apperror.NotFound:              http.StatusNotFound,
	apperror.UserNotFound:          http.StatusNotFound,
	apperror.BookNotFound:          http.StatusNotFound,
	apperror.OrderNotFound:         http.StatusNotFound,
	apperror.SessionConsumed:       http.StatusConflict,
	apperror.NotificationFailed:    http.StatusBadGateway,
}

// StatusOf maps a service error to its HTTP status. Uncoded errors are 500.
func StatusOf(err error) int {
	if status, ok := statusByCode[apperror.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, log zerolog.Logger, err error) {
	status := StatusOf(err)
	msg := apperror.Message(err)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("req_id", c.GetString(middleware.CtxRequestID)).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	if status == http.StatusInternalServerError || msg == "" {
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{"message": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

// bindMessage turns a binding error into a single user-facing sentence.
func bindMessage(err error) string {
	text := err.Error()
	switch {
	case strings.Contains(text, "'required'"):
		return "All required fields must be provided"
	case strings.Contains(text, "'isbn13'"):
		return "ISBN must be a 13-digit number"
	case strings.Contains(text, "'email'"):
		return "Invalid email address"
	case strings.Contains(text, "'min'"):
		return "Password must be at least 6 characters"
	}
	return "Invalid request body"
}

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}
