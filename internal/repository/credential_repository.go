package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"socialdash/internal/apperrors"
	"socialdash/internal/models"
	"socialdash/internal/security"
)

type credentialRepository struct {
	db     *sqlx.DB
	cipher security.TokenCipher
}

func NewCredentialRepository(db *sqlx.DB, cipher security.TokenCipher) CredentialRepository {
	return &credentialRepository{db: db, cipher: cipher}
}

// Upsert stores the token pair and marks the account connected in one statement.
func (r *credentialRepository) Upsert(ctx context.Context, userID, platform, accessToken string, refreshToken *string) error {
	if accessToken == "" {
		return apperrors.Validation("пустой access token")
	}

	encAccess, err := r.cipher.Encrypt(accessToken)
	if err != nil {
		return fmt.Errorf("ошибка шифрования access token: %w", err)
	}

	var encRefresh *string
	if refreshToken != nil && *refreshToken != "" {
		enc, err := r.cipher.Encrypt(*refreshToken)
		if err != nil {
			return fmt.Errorf("ошибка шифрования refresh token: %w", err)
		}
		encRefresh = &enc
	}

	query := `
		INSERT INTO social_accounts (user_id, platform, access_token, refresh_token, connected, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
		ON CONFLICT (user_id, platform) DO UPDATE
		SET access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			connected = TRUE,
			updated_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, query, userID, platform, encAccess, encRefresh)
	if err != nil {
		return apperrors.Storage("ошибка при сохранении учетных данных", err)
	}

	return nil
}

func (r *credentialRepository) Get(ctx context.Context, userID, platform string) (*models.Credential, error) {
	var cred models.Credential

	query := `
		SELECT user_id, platform, COALESCE(access_token, '') AS access_token, refresh_token, connected, updated_at
		FROM social_accounts
		WHERE user_id = $1 AND platform = $2
	`

	err := r.db.GetContext(ctx, &cred, query, userID, platform)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("аккаунт %s не найден: %w", platform, apperrors.ErrNotFound)
		}
		return nil, apperrors.Storage("ошибка при получении учетных данных", err)
	}

	if cred.AccessToken != "" {
		plain, err := r.cipher.Decrypt(cred.AccessToken)
		if err != nil {
			return nil, apperrors.Storage("ошибка расшифровки access token", err)
		}
		cred.AccessToken = plain
	}

	if cred.RefreshToken != nil {
		plain, err := r.cipher.Decrypt(*cred.RefreshToken)
		if err != nil {
			return nil, apperrors.Storage("ошибка расшифровки refresh token", err)
		}
		cred.RefreshToken = &plain
	}

	return &cred, nil
}

// SetConnected(false) forgets the stored tokens. SetConnected(true) only
// succeeds while an access token is still stored.
func (r *credentialRepository) SetConnected(ctx context.Context, userID, platform string, connected bool) error {
	var query string
	if connected {
		query = `
			UPDATE social_accounts
			SET connected = TRUE, updated_at = NOW()
			WHERE user_id = $1 AND platform = $2 AND COALESCE(access_token, '') <> ''
		`
	} else {
		query = `
			UPDATE social_accounts
			SET connected = FALSE, access_token = NULL, refresh_token = NULL, updated_at = NOW()
			WHERE user_id = $1 AND platform = $2
		`
	}

	result, err := r.db.ExecContext(ctx, query, userID, platform)
	if err != nil {
		return apperrors.Storage("ошибка при обновлении статуса аккаунта", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("ошибка при проверке обновленных строк", err)
	}

	if rowsAffected == 0 && connected {
		return apperrors.ErrNotConnected
	}

	return nil
}

func (r *credentialRepository) ListConnections(ctx context.Context, userID string) ([]models.Connection, error) {
	connections := make([]models.Connection, 0)

	query := `SELECT platform, connected FROM social_accounts WHERE user_id = $1 ORDER BY platform`

	err := r.db.SelectContext(ctx, &connections, query, userID)
	if err != nil {
		return nil, apperrors.Storage("ошибка при получении списка аккаунтов", err)
	}

	return connections, nil
}
