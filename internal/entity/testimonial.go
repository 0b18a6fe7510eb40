package entity

import (
	"context"
	"time"
)

type Testimonial struct {
	ID            string    `json:"id"`
	ClientName    string    `json:"client_name"`
	ClientTitle   string    `json:"client_title,omitempty"`
	ClientCompany string    `json:"client_company,omitempty"`
	ClientAvatar  string    `json:"client_avatar,omitempty"`
	Content       string    `json:"content"`
	Rating        int       `json:"rating"`
	ProjectID     *string   `json:"project_id,omitempty"`
	ProjectTitle  string    `json:"project_title,omitempty"`
	ProjectSlug   string    `json:"project_slug,omitempty"`
	Featured      bool      `json:"featured"`
	Status        string    `json:"status"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TestimonialFilter struct {
	ProjectID    string
	MinRating    int
	FeaturedOnly bool
	Page         int
	PerPage      int
}

type TestimonialRepositoryInterface interface {
	List(ctx context.Context, filter TestimonialFilter) ([]Testimonial, int, error)
	Featured(ctx context.Context, minRating, limit int) ([]Testimonial, error)
}
