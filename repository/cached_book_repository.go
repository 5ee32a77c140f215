package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bookstore/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	keyAllBooks    = "books:all"
	keyRecentBooks = "books:recent"
)

// CachedBookRepository is a read-through cache for the catalog listings.
// Any write drops both listing keys. Redis failures fall back to the
// underlying repository.
type CachedBookRepository struct {
	BookRepository
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedBookRepository(real BookRepository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedBookRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedBookRepository{
		BookRepository: real,
		redis:          rdb,
		ttl:            ttl,
		log:            log.With().Str("component", "book_cache").Logger(),
	}
}

func (c *CachedBookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	return c.listing(ctx, keyAllBooks, c.BookRepository.GetAll)
}

func (c *CachedBookRepository) GetRecent(ctx context.Context) ([]models.Book, error) {
	return c.listing(ctx, keyRecentBooks, c.BookRepository.GetRecent)
}

func (c *CachedBookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := c.BookRepository.Create(ctx, book); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedBookRepository) Update(ctx context.Context, book *models.Book) error {
	err := c.BookRepository.Update(ctx, book)
	c.invalidate(ctx)
	return err
}

func (c *CachedBookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := c.BookRepository.Delete(ctx, id)
	c.invalidate(ctx)
	return err
}

func (c *CachedBookRepository) SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	err := c.BookRepository.SetQuantity(ctx, id, quantity)
	c.invalidate(ctx)
	return err
}

func (c *CachedBookRepository) listing(ctx context.Context, key string, load func(context.Context) ([]models.Book, error)) ([]models.Book, error) {
	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		var books []models.Book
		if err := json.Unmarshal(data, &books); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("corrupt cache entry, reading from db")
			break
		}
		return books, nil

	case errors.Is(err, redis.Nil):

	default:
		c.log.Warn().Err(err).Str("key", key).Msg("redis read failed, reading from db")
	}

	books, err := load(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(books)
	if err != nil {
		c.log.Warn().Err(err).Msg("marshal books for cache")
		return books, nil
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return books, nil
}

func (c *CachedBookRepository) invalidate(ctx context.Context) {
	if err := c.redis.Del(ctx, keyAllBooks, keyRecentBooks).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}
