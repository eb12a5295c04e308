package adminlog

import "context"

type AdminLogRepository interface {
	Create(ctx context.Context, log AdminLog) error
	ListRecent(ctx context.Context, limit int) ([]AdminLog, error)
}
