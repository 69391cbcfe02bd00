// Package users implements the directory store on top of dbx.DBTX. Every
// statement is parameterized; "from" is a reserved word and is always quoted.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/dmitrijs2005/userdirectory/internal/dbx"
	"github.com/dmitrijs2005/userdirectory/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) QueryByAgeAbove(ctx context.Context, ageThreshold, limit int) ([]models.UserWithKey, error) {
	query :=
		`SELECT id, name, lastName, "from", age, settings FROM users
		 WHERE age > $1
		 ORDER BY id
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, ageThreshold, limit)
	if err != nil {
		return nil, dbx.ClassifyError(err)
	}
	defer rows.Close()

	users := make([]models.UserWithKey, 0)
	for rows.Next() {
		var (
			u        models.UserWithKey
			settings []byte
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.LastName, &u.From, &u.Age, &settings); err != nil {
			return nil, dbx.ClassifyError(err)
		}

		s, err := decodeSettings(settings)
		if err != nil {
			return nil, fmt.Errorf("%w: settings of user %d: %v", common.ErrorDecode, u.ID, err)
		}
		u.Key = s.Key

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.ClassifyError(err)
	}

	return users, nil
}

func (r *PostgresRepository) QueryByName(ctx context.Context, name string) (*models.User, error) {
	query :=
		`SELECT id, name, lastName, "from", age FROM users
		 WHERE name = $1
		 ORDER BY id
		 LIMIT 1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&user.ID, &user.Name, &user.LastName, &user.From, &user.Age)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbx.ClassifyError(err)
	}

	return user, nil
}

func (r *PostgresRepository) InsertUser(ctx context.Context, name, lastName string, age int) (int64, error) {
	query :=
		`INSERT INTO users (name, lastName, age)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, name, lastName, age).Scan(&id)

	if err != nil {
		return 0, dbx.ClassifyError(err)
	}

	return id, nil
}

// decodeSettings treats a NULL or empty column as empty settings.
func decodeSettings(raw []byte) (models.Settings, error) {
	var s models.Settings
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, err
	}
	return s, nil
}
