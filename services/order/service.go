// Package order serves order history and the admin status workflow.
package order

import (
	"context"
	"errors"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository"
)

type Service struct {
	orders repository.OrderRepository
}

func New(orders repository.OrderRepository) *Service {
	return &Service{orders: orders}
}

// History returns the user's orders, most recent first.
func (s *Service) History(ctx context.Context, userID string) ([]models.OrderDetail, error) {
	uid, err := models.ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, uid)
}

func (s *Service) All(ctx context.Context) ([]models.OrderDetail, error) {
	return s.orders.ListAll(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	oid, err := models.ParseID(id, "order")
	if err != nil {
		return nil, err
	}
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, apperror.New(apperror.BadInput, "Invalid status")
	}

	current, err := s.orders.GetByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.OrderNotFound, "Order not found")
	}
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransition(next) {
		return nil, apperror.New(apperror.InvalidTransition,
			"Cannot change status from "+string(current.Status)+" to "+string(next))
	}

	updated, err := s.orders.UpdateStatus(ctx, oid, next)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.OrderNotFound, "Order not found")
	}
	return updated, err
}
