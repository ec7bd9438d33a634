package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByBranch finds users assigned to a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]User, error)

	// FindAll finds users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error
}
