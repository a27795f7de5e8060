// Package memory holds an in-memory PostRepository used by tests and local
// development when no Postgres is available.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sarkaridekho/examinfo/internal/models"
	"github.com/sarkaridekho/examinfo/internal/repository"
)

type postRepo struct {
	mu    sync.RWMutex
	posts map[string]*models.Post
}

// NewPostRepository returns an empty in-memory repository.
func NewPostRepository() repository.PostRepository {
	return &postRepo{posts: make(map[string]*models.Post)}
}

func (r *postRepo) Create(ctx context.Context, post models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.Slug]; exists {
		return nil, repository.ErrDuplicateSlug
	}

	now := time.Now()
	post.ID = uuid.New()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}

	stored := post
	r.posts[post.Slug] = &stored
	return clone(&stored), nil
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[slug]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return clone(post), nil
}

func (r *postRepo) ListByCategory(ctx context.Context, category models.Category, limit int) ([]*models.Post, error) {
	limit = repository.ClampLimit(limit)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*models.Post
	for _, post := range r.posts {
		if post.Category == category {
			matches = append(matches, clone(post))
		}
	}
	return truncate(sortByRecency(matches), limit), nil
}

func (r *postRepo) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	limit = repository.ClampLimit(limit)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*models.Post
	for _, post := range r.posts {
		all = append(all, clone(post))
	}
	return truncate(sortByRecency(all), limit), nil
}

func (r *postRepo) UpdateBySlug(ctx context.Context, slug string, post models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[slug]
	if !ok {
		return nil, repository.ErrPostNotFound
	}

	existing.Title = post.Title
	existing.FeatureImage = post.FeatureImage
	existing.ContentHTML = post.ContentHTML
	existing.Category = post.Category
	existing.MetaDescription = post.MetaDescription
	if post.Tags == nil {
		existing.Tags = []string{}
	} else {
		existing.Tags = post.Tags
	}
	existing.UpdatedAt = time.Now()

	return clone(existing), nil
}

func (r *postRepo) Search(ctx context.Context, query string) ([]*models.Post, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*models.Post{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*models.Post
	for _, post := range r.posts {
		if matchesQuery(post, query) {
			matches = append(matches, clone(post))
		}
	}
	return truncate(sortByRecency(matches), repository.SearchLimit), nil
}

func (r *postRepo) RelatedTo(ctx context.Context, id uuid.UUID, category models.Category, tags []string) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*models.Post
	for _, post := range r.posts {
		if post.ID == id {
			continue
		}
		if post.Category == category || intersects(post.Tags, tags) {
			matches = append(matches, clone(post))
		}
	}
	return truncate(sortByRecency(matches), repository.RelatedLimit), nil
}

func (r *postRepo) ListForSitemap(ctx context.Context) ([]repository.SitemapEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*models.Post
	for _, post := range r.posts {
		all = append(all, post)
	}
	all = truncate(sortByRecency(all), repository.SitemapLimit)

	entries := make([]repository.SitemapEntry, 0, len(all))
	for _, post := range all {
		entries = append(entries, repository.SitemapEntry{Slug: post.Slug, UpdatedAt: post.UpdatedAt})
	}
	return entries, nil
}

func matchesQuery(post *models.Post, lowered string) bool {
	if strings.Contains(strings.ToLower(post.Title), lowered) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func sortByRecency(posts []*models.Post) []*models.Post {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].UpdatedAt.After(posts[j].UpdatedAt)
	})
	return posts
}

func truncate[T any](items []T, limit int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func clone(post *models.Post) *models.Post {
	c := *post
	c.Tags = append([]string{}, post.Tags...)
	return &c
}
