package controllers

import (
	"net/http"

	"bookstore/models"

	"github.com/gin-gonic/gin"
)

func (h *OrderController) GetAllOrders(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.orders.All(ctx)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "data": orders})
}

func (h *OrderController) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.orders.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Status updated successfully", "data": o})
}
