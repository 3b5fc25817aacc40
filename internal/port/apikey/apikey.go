package apikey

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("api key not found")

type Key struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Reader verifies caller API keys. The key material itself is the lookup
// value; it is never logged.
type Reader interface {
	Verify(ctx context.Context, key string) (Key, error)
}
