package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/caioaot/atelier-backend/internal/entity"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

const projectColumns = `id, title, slug, description, COALESCE(short_description, ''), category,
	technologies, images, COALESCE(featured_image, ''), COALESCE(demo_url, ''),
	COALESCE(github_url, ''), COALESCE(client_name, ''), project_date, status, featured,
	sort_order, COALESCE(meta_title, ''), COALESCE(meta_description, ''), created_at, updated_at`

// List returns published projects matching the filter plus the unpaginated
// total for the response envelope.
func (r *ProjectRepository) List(ctx context.Context, filter entity.ProjectFilter) ([]entity.Project, int, error) {
	where := []string{"status = 'published'"}
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Technology != "" {
		args = append(args, filter.Technology)
		// jsonb ? tests string membership in the technologies array
		where = append(where, fmt.Sprintf("technologies ? $%d", len(args)))
	}
	if filter.FeaturedOnly {
		where = append(where, "featured = TRUE")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM projects WHERE " + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(`
		SELECT %s FROM projects
		WHERE %s
		ORDER BY sort_order, created_at DESC
		LIMIT $%d OFFSET $%d`,
		projectColumns, whereClause, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *p)
	}

	return projects, total, rows.Err()
}

// FindBySlug loads a published project with its published testimonials.
// Returns entity.ErrNotFound for unknown slugs and unpublished projects.
func (r *ProjectRepository) FindBySlug(ctx context.Context, slug string) (*entity.Project, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM projects WHERE slug = $1 AND status = 'published'", projectColumns)

	row := r.DB.QueryRowContext(ctx, query, slug)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	testimonials, err := r.projectTestimonials(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Testimonials = testimonials

	return project, nil
}

func (r *ProjectRepository) projectTestimonials(ctx context.Context, projectID string) ([]entity.Testimonial, error) {
	query := `
		SELECT id, client_name, COALESCE(client_title, ''), COALESCE(client_company, ''),
			COALESCE(client_avatar, ''), content, rating, project_id, featured, status,
			sort_order, created_at, updated_at
		FROM testimonials
		WHERE project_id = $1 AND status = 'published'
		ORDER BY sort_order, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []entity.Testimonial
	for rows.Next() {
		var t entity.Testimonial
		err := rows.Scan(
			&t.ID, &t.ClientName, &t.ClientTitle, &t.ClientCompany, &t.ClientAvatar,
			&t.Content, &t.Rating, &t.ProjectID, &t.Featured, &t.Status,
			&t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}

	return testimonials, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var p entity.Project
	var technologies, images []byte

	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.ShortDescription, &p.Category,
		&technologies, &images, &p.FeaturedImage, &p.DemoURL,
		&p.GithubURL, &p.ClientName, &p.ProjectDate, &p.Status, &p.Featured,
		&p.SortOrder, &p.MetaTitle, &p.MetaDescription, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(technologies, &p.Technologies); err != nil {
		return nil, fmt.Errorf("decode technologies: %w", err)
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}

	return &p, nil
}
