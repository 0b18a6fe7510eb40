package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/caioaot/atelier-backend/internal/entity"
)

type TestimonialRepository struct {
	DB *sql.DB
}

func NewTestimonialRepository(db *sql.DB) *TestimonialRepository {
	return &TestimonialRepository{DB: db}
}

const testimonialSelect = `
	SELECT t.id, t.client_name, COALESCE(t.client_title, ''), COALESCE(t.client_company, ''),
		COALESCE(t.client_avatar, ''), t.content, t.rating, t.project_id,
		COALESCE(p.title, ''), COALESCE(p.slug, ''), t.featured, t.status,
		t.sort_order, t.created_at, t.updated_at
	FROM testimonials t
	LEFT JOIN projects p ON p.id = t.project_id`

func (r *TestimonialRepository) List(ctx context.Context, filter entity.TestimonialFilter) ([]entity.Testimonial, int, error) {
	where := []string{"t.status = 'published'"}
	args := []any{}

	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		where = append(where, fmt.Sprintf("t.project_id = $%d", len(args)))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		where = append(where, fmt.Sprintf("t.rating >= $%d", len(args)))
	}
	if filter.FeaturedOnly {
		where = append(where, "t.featured = TRUE")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM testimonials t WHERE " + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY t.sort_order, t.created_at DESC
		LIMIT $%d OFFSET $%d`,
		testimonialSelect, whereClause, len(args)-1, len(args))

	testimonials, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return testimonials, total, nil
}

func (r *TestimonialRepository) Featured(ctx context.Context, minRating, limit int) ([]entity.Testimonial, error) {
	where := "t.status = 'published' AND t.featured = TRUE"
	args := []any{}

	if minRating > 0 {
		args = append(args, minRating)
		where += fmt.Sprintf(" AND t.rating >= $%d", len(args))
	}

	args = append(args, limit)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY t.sort_order, t.created_at DESC
		LIMIT $%d`,
		testimonialSelect, where, len(args))

	return r.query(ctx, query, args...)
}

func (r *TestimonialRepository) query(ctx context.Context, query string, args ...any) ([]entity.Testimonial, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []entity.Testimonial
	for rows.Next() {
		var t entity.Testimonial
		err := rows.Scan(
			&t.ID, &t.ClientName, &t.ClientTitle, &t.ClientCompany,
			&t.ClientAvatar, &t.Content, &t.Rating, &t.ProjectID,
			&t.ProjectTitle, &t.ProjectSlug, &t.Featured, &t.Status,
			&t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}

	return testimonials, rows.Err()
}
