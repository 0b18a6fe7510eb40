package entity

import (
	"context"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Project struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description,omitempty"`
	Category         string     `json:"category"`
	Technologies     []string   `json:"technologies"`
	Images           []string   `json:"images"`
	FeaturedImage    string     `json:"featured_image,omitempty"`
	DemoURL          string     `json:"demo_url,omitempty"`
	GithubURL        string     `json:"github_url,omitempty"`
	ClientName       string     `json:"client_name,omitempty"`
	ProjectDate      *time.Time `json:"project_date,omitempty"`
	Status           string     `json:"status"`
	Featured         bool       `json:"featured"`
	SortOrder        int        `json:"sort_order"`
	MetaTitle        string     `json:"meta_title,omitempty"`
	MetaDescription  string     `json:"meta_description,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Loaded only on the detail endpoint.
	Testimonials []Testimonial `json:"testimonials,omitempty"`
}

// ProjectFilter narrows the public listing. Only published projects are ever
// listed; the repository enforces that, not the caller.
type ProjectFilter struct {
	Category     string
	Technology   string
	FeaturedOnly bool
	Page         int
	PerPage      int
}

type ProjectRepositoryInterface interface {
	List(ctx context.Context, filter ProjectFilter) ([]Project, int, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
}
