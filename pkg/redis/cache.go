package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openshelf/bookstore-api/pkg/models"
)

const bookCacheTTL = 24 * time.Hour

func bookKey(id string) string {
	return fmt.Sprintf("book:%s", id)
}

// CacheBook stores a book under book:{id} with a 24h TTL.
func CacheBook(ctx context.Context, book *models.Book) error {
	payload, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to marshal book %s: %w", book.ID.Hex(), err)
	}

	if err := Client().Set(ctx, bookKey(book.ID.Hex()), payload, bookCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache book %s: %w", book.ID.Hex(), err)
	}

	return nil
}

// GetBookFromCache returns the cached book or redis.Nil when absent.
func GetBookFromCache(ctx context.Context, id string) (*models.Book, error) {
	payload, err := Client().Get(ctx, bookKey(id)).Result()
	if err != nil {
		return nil, err
	}

	var book models.Book
	if err := json.Unmarshal([]byte(payload), &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal book: %w", err)
	}

	return &book, nil
}

// InvalidateBook drops a single cached book. Called after any write that
// changes its fields, including stock decrements during checkout.
func InvalidateBook(ctx context.Context, id string) error {
	return Client().Del(ctx, bookKey(id)).Err()
}

// InvalidateBooks drops several cached books in one round trip.
func InvalidateBooks(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = bookKey(id)
	}

	return Client().Del(ctx, keys...).Err()
}
