// Package invoice renders an order into an HTML email and sends it.
package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"bookstore/apperror"
	"bookstore/mailer"
	"bookstore/models"
	"bookstore/queue"
	"bookstore/repository"

	"github.com/shopspring/decimal"
)

type Service struct {
	users  repository.UserRepository
	orders repository.OrderRepository
	mail   mailer.Sender
	store  string
}

func New(users repository.UserRepository, orders repository.OrderRepository, mail mailer.Sender, storeName string) *Service {
	return &Service{users: users, orders: orders, mail: mail, store: storeName}
}

// Send emails the invoice for one of the user's orders. Order state is never
// touched, so a transport failure can simply be retried.
func (s *Service) Send(ctx context.Context, orderID, userID string) error {
	oid, err := models.ParseID(orderID, "order")
	if err != nil {
		return err
	}
	uid, err := models.ParseID(userID, "user")
	if err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.New(apperror.UserNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	if !u.HasOrder(oid) {
		return apperror.New(apperror.OrderNotFound, "Order not found")
	}

	order, err := s.orders.GetDetail(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.New(apperror.OrderNotFound, "Order not found")
	}
	if err != nil {
		return err
	}
	if len(order.Books) == 0 {
		return apperror.New(apperror.EmptyOrder, "No books found in this order")
	}

	body, err := s.render(u, order)
	if err != nil {
		return err
	}

	err = s.mail.Send(ctx, mailer.Message{
		To:      u.Email,
		Subject: "Invoice for Order #" + order.ID.Hex(),
		HTML:    body,
	})
	if err != nil {
		return apperror.Wrap(apperror.NotificationFailed, "Failed to send invoice", err)
	}
	return nil
}

// Handle adapts Send to the invoice task queue.
func (s *Service) Handle(ctx context.Context, job queue.InvoiceJob) error {
	return s.Send(ctx, job.OrderID, job.UserID)
}

func (s *Service) render(u *models.User, order *models.OrderDetail) (string, error) {
	view := invoiceView{
		Store:    s.store,
		OrderID:  order.ID.Hex(),
		Customer: u.Username,
		Email:    u.Email,
	}
	for _, b := range order.Books {
		view.Lines = append(view.Lines, lineView{
			Image:    b.URL,
			Name:     b.Name,
			Quantity: b.Quantity,
			Price:    decimal.NewFromFloat(b.Price).StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return buf.String(), nil
}

// IsPermanent reports errors that will fail the same way on every retry.
func IsPermanent(err error) bool {
	switch apperror.CodeOf(err) {
	case apperror.BadInput, apperror.UserNotFound, apperror.OrderNotFound, apperror.EmptyOrder:
		return true
	}
	return false
}
