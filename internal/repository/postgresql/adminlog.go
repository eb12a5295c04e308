package postgresql

import (
	"context"
	"fmt"

	"github.com/epayroll/payroll-backend-go/internal/domain/adminlog"
	"github.com/epayroll/payroll-backend-go/internal/pkg/database"
)

type adminLogRepository struct {
	db *database.DB
}

func NewAdminLogRepository(db *database.DB) adminlog.AdminLogRepository {
	return &adminLogRepository{db: db}
}

func (r *adminLogRepository) Create(ctx context.Context, log adminlog.AdminLog) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO admin_logs (admin_id, action, description, ip_address)
		VALUES ($1, $2, $3, $4)
	`, log.AdminID, log.Action, log.Description, log.IPAddress)
	if err != nil {
		return fmt.Errorf("failed to create admin log: %w", err)
	}

	return nil
}

func (r *adminLogRepository) ListRecent(ctx context.Context, limit int) ([]adminlog.AdminLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, admin_id, action, description, ip_address, created_at
		FROM admin_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin logs: %w", err)
	}
	defer rows.Close()

	var logs []adminlog.AdminLog
	for rows.Next() {
		var l adminlog.AdminLog
		if err := rows.Scan(&l.ID, &l.AdminID, &l.Action, &l.Description, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
