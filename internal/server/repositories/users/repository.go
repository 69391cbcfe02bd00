package users

import (
	"context"

	"github.com/dmitrijs2005/userdirectory/internal/server/models"
)

// Repository is the directory store: parameterized reads and inserts on the
// users table.
type Repository interface {
	QueryByAgeAbove(ctx context.Context, ageThreshold, limit int) ([]models.UserWithKey, error)
	QueryByName(ctx context.Context, name string) (*models.User, error)
	InsertUser(ctx context.Context, name, lastName string, age int) (int64, error)
}
