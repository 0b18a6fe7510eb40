package database

import (
	"context"
	"database/sql"

	"github.com/caioaot/atelier-backend/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, company, subject, message,
			type, status, priority, source, ip_address, user_agent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, nullString(c.Phone), nullString(c.Company),
		c.Subject, c.Message, c.Type, c.Status, c.Priority, c.Source,
		nullString(c.IPAddress), nullString(c.UserAgent), c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
