package controllers

import (
	"context"
	"net/http"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/payment"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, userID string) (*payment.CheckoutSession, error)
	PlaceOrder(ctx context.Context, requesterID, sessionID string) ([]primitive.ObjectID, error)
}

type OrderService interface {
	History(ctx context.Context, userID string) ([]models.OrderDetail, error)
	All(ctx context.Context) ([]models.OrderDetail, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
}

type InvoiceService interface {
	Send(ctx context.Context, orderID, userID string) error
}

type OrderController struct {
	checkout CheckoutService
	orders   OrderService
	invoices InvoiceService
	log      zerolog.Logger
}

func NewOrderController(checkout CheckoutService, orders OrderService, invoices InvoiceService, log zerolog.Logger) *OrderController {
	return &OrderController{checkout: checkout, orders: orders, invoices: invoices, log: log}
}

func (h *OrderController) CreateCheckoutSession(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cs, err := h.checkout.CreateSession(ctx, userID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": cs.ID, "url": cs.URL})
}

func (h *OrderController) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "session_id is required")
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ids, err := h.checkout.PlaceOrder(ctx, userID(c), req.SessionID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	orders := make([]string, len(ids))
	for i, id := range ids {
		orders[i] = id.Hex()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Order placed successfully",
		"orders":  orders,
	})
}

func (h *OrderController) GetOrderHistory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.orders.History(ctx, userID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": orders})
}

func (h *OrderController) SendInvoice(c *gin.Context) {
	var req models.SendInvoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "order_id is required"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.invoices.Send(ctx, req.OrderID, userID(c)); err != nil {
		status := StatusOf(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Str("order_id", req.OrderID).Msg("send invoice failed")
		}
		c.JSON(status, gin.H{"success": false, "message": invoiceMessage(err, status)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invoice sent successfully"})
}

func invoiceMessage(err error, status int) string {
	if msg := apperror.Message(err); msg != "" && status != http.StatusInternalServerError {
		return msg
	}
	return "Internal server error"
}
