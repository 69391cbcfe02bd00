// Package services contains server-side business logic. UserService is the
// directory service: it normalizes caller input and drives the users
// repository, running bulk inserts inside a single transaction.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/dmitrijs2005/userdirectory/internal/dbx"
	"github.com/dmitrijs2005/userdirectory/internal/logging"
	"github.com/dmitrijs2005/userdirectory/internal/server/config"
	"github.com/dmitrijs2005/userdirectory/internal/server/models"
	"github.com/dmitrijs2005/userdirectory/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxNamesBatch caps the number of lookups a single GetUsersByNames call may
// issue, independent of the configured users limit.
const MaxNamesBatch = 10

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	limit       int
	logger      logging.Logger
	validate    *validator.Validate
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg config.Provider, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		limit:       cfg.DefaultLimit(),
		logger:      logger,
		validate:    validator.New(),
	}
}

// GetUsersByAgeThreshold returns up to the configured limit of users strictly
// older than ageFrom, each with the key from its settings.
func (s *UserService) GetUsersByAgeThreshold(ctx context.Context, ageFrom int) ([]models.UserWithKey, error) {
	repo := s.repomanager.Users(s.db)
	return repo.QueryByAgeAbove(ctx, ageFrom, s.limit)
}

// GetUsersByRawAge accepts the threshold as text, e.g. straight from a query
// string.
func (s *UserService) GetUsersByRawAge(ctx context.Context, raw string) ([]models.UserWithKey, error) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: age %q is not an integer", common.ErrorInvalidInput, raw)
	}
	return s.GetUsersByAgeThreshold(ctx, age)
}

// ParseNames turns a decoded request value into a list of names. Only a
// sequence of strings is accepted.
func ParseNames(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		if v == nil {
			return nil, fmt.Errorf("%w: names are missing", common.ErrorInvalidInput)
		}
		return append([]string{}, v...), nil
	case []any:
		if v == nil {
			return nil, fmt.Errorf("%w: names are missing", common.ErrorInvalidInput)
		}
		names := make([]string, 0, len(v))
		for i, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: names[%d] is %T, not a string", common.ErrorInvalidInput, i, item)
			}
			names = append(names, name)
		}
		return names, nil
	case nil:
		return nil, fmt.Errorf("%w: names are missing", common.ErrorInvalidInput)
	default:
		return nil, fmt.Errorf("%w: names must be a list, got %T", common.ErrorInvalidInput, raw)
	}
}

// GetUsersByNames looks names up one by one, in order. Blank names are
// dropped, at most MaxNamesBatch lookups are made and misses are skipped.
// A nil slice means the names were not supplied at all.
func (s *UserService) GetUsersByNames(ctx context.Context, names []string) ([]models.User, error) {
	if names == nil {
		return nil, fmt.Errorf("%w: names are missing", common.ErrorInvalidInput)
	}

	batch := make([]string, 0, min(len(names), MaxNamesBatch))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		batch = append(batch, n)
		if len(batch) == MaxNamesBatch {
			break
		}
	}

	repo := s.repomanager.Users(s.db)

	result := make([]models.User, 0, len(batch))
	for _, n := range batch {
		u, err := repo.QueryByName(ctx, n)
		if err != nil {
			return nil, err
		}
		if u == nil {
			continue
		}
		result = append(result, *u)
	}

	return result, nil
}

// AddUsers inserts the whole batch in one transaction and returns the new ids
// in input order. If any record fails, nothing is persisted and the error
// wraps both common.ErrorTransaction and the record's own error.
func (s *UserService) AddUsers(ctx context.Context, users []models.NewUser) ([]int64, error) {
	if len(users) == 0 {
		return []int64{}, nil
	}

	logger := s.logger.With("batch_id", uuid.NewString(), "count", len(users))

	var ids []int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		ids = make([]int64, 0, len(users))

		for i, u := range users {
			u.Name = strings.TrimSpace(u.Name)
			u.LastName = strings.TrimSpace(u.LastName)

			if err := s.validate.Struct(u); err != nil {
				return fmt.Errorf("%w: record %d: %w: %w", common.ErrorTransaction, i, common.ErrorInvalidInput, err)
			}

			id, err := repo.InsertUser(ctx, u.Name, u.LastName, u.Age)
			if err != nil {
				return fmt.Errorf("%w: record %d: %w", common.ErrorTransaction, i, err)
			}
			ids = append(ids, id)
		}

		return nil
	})

	if err != nil {
		logger.Warn(ctx, "batch rolled back", "error", err)
		return nil, err
	}

	logger.Info(ctx, "batch committed")
	return ids, nil
}
