// Package bookrequest handles customer requests for titles not in the catalog.
package bookrequest

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository"
)

var isbn13 = regexp.MustCompile(`^\d{13}$`)

// ValidISBN13 reports whether s is exactly thirteen digits.
func ValidISBN13(s string) bool { return isbn13.MatchString(s) }

type Service struct {
	requests repository.BookRequestRepository
}

func New(requests repository.BookRequestRepository) *Service {
	return &Service{requests: requests}
}

func (s *Service) Create(ctx context.Context, userID string, req models.BookRequestReq) (*models.BookRequest, error) {
	uid, err := models.ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.BookTitle)
	author := strings.TrimSpace(req.Author)
	if title == "" || author == "" {
		return nil, apperror.New(apperror.BadInput, "Book title and author are required")
	}
	isbn := strings.TrimSpace(req.ISBN)
	if !ValidISBN13(isbn) {
		return nil, apperror.New(apperror.BadInput, "ISBN must be a 13-digit number")
	}

	br := &models.BookRequest{
		User:      uid,
		BookTitle: title,
		Author:    author,
		ISBN:      isbn,
		Status:    models.RequestPending,
		Message:   strings.TrimSpace(req.Message),
	}
	if err := s.requests.Create(ctx, br); err != nil {
		return nil, err
	}
	return br, nil
}

func (s *Service) ForUser(ctx context.Context, userID string) ([]models.BookRequest, error) {
	uid, err := models.ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, apperror.New(apperror.NotFound, "No book requests found")
	}
	return reqs, nil
}

func (s *Service) All(ctx context.Context) ([]models.BookRequestDetail, error) {
	return s.requests.ListAll(ctx)
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (*models.BookRequest, error) {
	rid, err := models.ParseID(id, "request")
	if err != nil {
		return nil, err
	}
	st := models.RequestStatus(status)
	if !st.Valid() {
		return nil, apperror.New(apperror.BadInput, "Invalid status")
	}
	br, err := s.requests.UpdateStatus(ctx, rid, st)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.NotFound, "Request not found")
	}
	return br, err
}
