package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	repo "blogapi/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, e repo.AuditEntry) error {
	md, _ := json.Marshal(e.Metadata)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (user_id, email, action, ip, user_agent, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, nullable(e.UserID), nullable(e.Email), e.Action, nullable(e.IP), nullable(e.UserAgent), md)
	return err
}

var _ repo.AuditRepository = (*AuditRepository)(nil)
