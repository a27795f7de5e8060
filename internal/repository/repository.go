package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sarkaridekho/examinfo/internal/models"
)

var (
	// ErrPostNotFound is returned when no post exists for a slug.
	ErrPostNotFound = errors.New("post not found")
	// ErrDuplicateSlug is returned when a create collides with an existing slug.
	ErrDuplicateSlug = errors.New("a post with this slug already exists")
)

const (
	// DefaultListLimit applies when a caller passes no limit.
	DefaultListLimit = 10
	// MaxListLimit caps category listings.
	MaxListLimit = 50
	// SearchLimit caps search results.
	SearchLimit = 20
	// RelatedLimit caps the related-posts rail.
	RelatedLimit = 6
	// SitemapLimit caps sitemap entries.
	SitemapLimit = 5000
)

// SitemapEntry is the slug/updatedAt projection used by the sitemap
// generator, fetched without dragging post bodies along.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// PostRepository is the persistence contract for posts. The concrete
// Postgres implementation lives in the postgres subpackage; an in-memory
// implementation backs the tests.
type PostRepository interface {
	// Create persists a new post, assigning ID and timestamps. Returns
	// ErrDuplicateSlug if the slug is already taken.
	Create(ctx context.Context, post models.Post) (*models.Post, error)

	// GetBySlug returns the post for slug or ErrPostNotFound.
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)

	// ListByCategory returns up to limit posts in the category, newest
	// updatedAt first. Non-positive limits fall back to DefaultListLimit;
	// limits above MaxListLimit are clamped.
	ListByCategory(ctx context.Context, category models.Category, limit int) ([]*models.Post, error)

	// ListRecent returns up to limit posts across all categories, newest
	// updatedAt first, with the same limit normalization as ListByCategory.
	ListRecent(ctx context.Context, limit int) ([]*models.Post, error)

	// UpdateBySlug replaces the mutable fields of the post identified by
	// slug and refreshes updatedAt. Returns ErrPostNotFound if absent.
	UpdateBySlug(ctx context.Context, slug string, post models.Post) (*models.Post, error)

	// Search matches query case-insensitively as a substring of the title
	// or of any individual tag, newest first, up to SearchLimit results.
	// An empty or whitespace query returns no results.
	Search(ctx context.Context, query string) ([]*models.Post, error)

	// RelatedTo returns up to RelatedLimit posts sharing the category or at
	// least one tag, excluding the given post, newest first.
	RelatedTo(ctx context.Context, id uuid.UUID, category models.Category, tags []string) ([]*models.Post, error)

	// ListForSitemap returns slug/updatedAt pairs for every post, newest
	// first, up to SitemapLimit.
	ListForSitemap(ctx context.Context) ([]SitemapEntry, error)
}

// ClampLimit normalizes a caller-supplied listing limit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
