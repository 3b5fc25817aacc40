package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("wallet not found")

// Reader resolves a caller's registered wallet address.
type Reader interface {
	AddressForUser(ctx context.Context, userID uuid.UUID) (string, error)
}
