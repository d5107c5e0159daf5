package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/league-api/models"
)

var ErrTokenNotFound = errors.New("access token not found")

type TokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	GetUserByTokenHash(ctx context.Context, hash string) (*models.User, error)
	Touch(ctx context.Context, hash string) error
	DeleteByHash(ctx context.Context, hash string) error
}

type postgresTokenRepository struct {
	db *sql.DB
}

func NewPostgresTokenRepository(db *sql.DB) TokenRepository {
	return &postgresTokenRepository{db: db}
}

func (r *postgresTokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	query := `
		INSERT INTO access_tokens (user_id, token_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		token.UserID,
		token.TokenHash,
	).Scan(&token.ID, &token.CreatedAt)
}

// GetUserByTokenHash resolves a token hash to its owning user in one query.
func (r *postgresTokenRepository) GetUserByTokenHash(ctx context.Context, hash string) (*models.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.created_at, u.updated_at
		FROM access_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token_hash = $1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, hash).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *postgresTokenRepository) Touch(ctx context.Context, hash string) error {
	query := `UPDATE access_tokens SET last_used_at = now() WHERE token_hash = $1`
	_, err := r.db.ExecContext(ctx, query, hash)
	return err
}

// DeleteByHash revokes exactly one token; other tokens of the same user are
// left untouched.
func (r *postgresTokenRepository) DeleteByHash(ctx context.Context, hash string) error {
	query := `DELETE FROM access_tokens WHERE token_hash = $1`
	result, err := r.db.ExecContext(ctx, query, hash)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTokenNotFound)
}
