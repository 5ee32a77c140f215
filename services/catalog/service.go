package catalog

import (
	"context"
	"errors"
	"strings"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var searchFilters = map[string]string{
	"":            "",
	"all":         "",
	"name":        "name",
	"author":      "author",
	"language":    "language",
	"description": "description",
	"isbn":        "isbn",
	"category":    "category",
}

type Service struct {
	books repository.BookRepository
}

func New(books repository.BookRepository) *Service {
	return &Service{books: books}
}

func (s *Service) Add(ctx context.Context, req models.BookReq) (*models.Book, error) {
	b, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.books.Create(ctx, b); err != nil {
		return nil, mapWriteErr(err)
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id string, req models.BookReq) (*models.Book, error) {
	oid, err := models.ParseID(id, "book")
	if err != nil {
		return nil, err
	}
	b, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	b.ID = oid
	if err := s.books.Update(ctx, b); err != nil {
		return nil, mapWriteErr(err)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := models.ParseID(id, "book")
	if err != nil {
		return err
	}
	return mapWriteErr(s.books.Delete(ctx, oid))
}

func (s *Service) All(ctx context.Context) ([]models.Book, error) {
	return s.books.GetAll(ctx)
}

func (s *Service) Recent(ctx context.Context) ([]models.Book, error) {
	return s.books.GetRecent(ctx)
}

func (s *Service) ByID(ctx context.Context, id string) (*models.Book, error) {
	oid, err := models.ParseID(id, "book")
	if err != nil {
		return nil, err
	}
	return s.get(ctx, oid)
}

func (s *Service) get(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.BookNotFound, "Book not found")
	}
	return b, err
}

func (s *Service) Search(ctx context.Context, q, filter string) ([]models.Book, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.New(apperror.BadInput, "Search query is required")
	}
	field, ok := searchFilters[strings.ToLower(strings.TrimSpace(filter))]
	if !ok {
		return nil, apperror.New(apperror.BadInput, "Invalid search filter")
	}
	return s.books.Search(ctx, field, q)
}

func fromRequest(req models.BookReq) (*models.Book, error) {
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, apperror.New(apperror.BadInput, "Discount percent must be between 0 and 100")
	}

	b := &models.Book{
		URL:             strings.TrimSpace(req.URL),
		Name:            strings.TrimSpace(req.Name),
		Author:          strings.TrimSpace(req.Author),
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		DiscountPercent: req.DiscountPercent,
		Category:        strings.TrimSpace(req.Category),
		Language:        strings.TrimSpace(req.Language),
		Stock:           models.DefaultStock,
		Quantity:        models.DefaultQuantity,
		ISBN:            strings.TrimSpace(req.ISBN),
	}
	if req.Stock != nil {
		b.Stock = *req.Stock
	}
	if req.Quantity != nil {
		b.Quantity = *req.Quantity
	}

	b.ApplyDiscount()
	if b.DiscountedPrice > b.Price {
		return nil, apperror.New(apperror.BadInput, "Discounted price cannot exceed price")
	}
	return b, nil
}

func mapWriteErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.New(apperror.AlreadyExists, "A book with this ISBN already exists")
	case errors.Is(err, repository.ErrNotFound):
		return apperror.New(apperror.BookNotFound, "Book not found")
	}
	return err
}
