package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/caioaot/atelier-backend/internal/entity"
)

const uniqueViolation = "23505"

type SubscriberRepository struct {
	DB *sql.DB
}

func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{DB: db}
}

func (r *SubscriberRepository) Create(ctx context.Context, s *entity.Subscriber) error {
	preferences := []byte("{}")
	if s.Preferences != nil {
		var err error
		preferences, err = json.Marshal(s.Preferences)
		if err != nil {
			return fmt.Errorf("encode preferences: %w", err)
		}
	}

	query := `
		INSERT INTO newsletter_subscribers (id, email, name, status, source, preferences,
			verification_token, ip_address, user_agent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.Email, nullString(s.Name), s.Status, s.Source, preferences,
		s.VerificationToken, nullString(s.IPAddress), nullString(s.UserAgent),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}

	return nil
}

func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), status, COALESCE(source, ''), preferences,
			listmonk_subscriber_id, COALESCE(verification_token, ''), verified_at,
			unsubscribed_at, created_at, updated_at
		FROM newsletter_subscribers
		WHERE email = $1`

	var s entity.Subscriber
	var preferences []byte

	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&s.ID, &s.Email, &s.Name, &s.Status, &s.Source, &preferences,
		&s.ListmonkID, &s.VerificationToken, &s.VerifiedAt,
		&s.UnsubscribedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(preferences, &s.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}

	return &s, nil
}

// UpdateStatus also maintains unsubscribed_at: set when unsubscribing,
// cleared when the address becomes active again.
func (r *SubscriberRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE newsletter_subscribers
		SET status = $2,
			unsubscribed_at = CASE WHEN $2 = 'unsubscribed' THEN NOW() ELSE NULL END,
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *SubscriberRepository) SetListmonkID(ctx context.Context, id string, listmonkID int) error {
	query := `
		UPDATE newsletter_subscribers
		SET listmonk_subscriber_id = $2, updated_at = NOW()
		WHERE id = $1`

	_, err := r.DB.ExecContext(ctx, query, id, listmonkID)
	return err
}
