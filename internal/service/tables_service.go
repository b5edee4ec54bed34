package service

import (
	"context"

	"socialdash/internal/repository"
)

type HealthStatus struct {
	Status         string `json:"status"`
	Tables         int    `json:"tables"`
	ExpectedTables int    `json:"expected_tables"`
}

// TablesService checks that the database is reachable and migrated.
type TablesService interface {
	Check(ctx context.Context) (HealthStatus, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) Check(ctx context.Context) (HealthStatus, error) {
	status := HealthStatus{Status: "degraded", ExpectedTables: len(repository.SchemaTables)}

	countTables, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return status, err
	}

	status.Tables = countTables
	if countTables == status.ExpectedTables {
		status.Status = "ok"
	}

	return status, nil
}
