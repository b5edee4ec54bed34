package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"socialdash/internal/apperrors"
)

// SchemaTables are the tables the service cannot run without.
var SchemaTables = []string{"users", "social_accounts", "scheduled_posts", "posts", "platform_entities", "insights"}

// TablesRepository reports on the database schema for health checks.
type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

// CountTablesDB counts how many of SchemaTables exist.
func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	var count int

	query, args, err := sqlx.In(`
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name IN (?)
		`, SchemaTables)
	if err != nil {
		return 0, apperrors.Storage("ошибка при подготовке запроса", err)
	}

	err = r.db.GetContext(ctx, &count, r.db.Rebind(query), args...)
	if err != nil {
		return 0, apperrors.Storage("ошибка при подсчёте таблиц базы данных", err)
	}

	return count, nil
}
