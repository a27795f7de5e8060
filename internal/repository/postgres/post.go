package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sarkaridekho/examinfo/internal/models"
	"github.com/sarkaridekho/examinfo/internal/repository"
)

const postColumns = "id, title, slug, feature_image, content_html, category, meta_description, tags, created_at, updated_at"

type postRepo struct {
	db *pgxpool.Pool
}

// NewPostRepository returns the Postgres-backed post repository.
func NewPostRepository(db *pgxpool.Pool) repository.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post models.Post) (*models.Post, error) {
	post.ID = uuid.New()
	if post.Tags == nil {
		post.Tags = []string{}
	}

	err := r.db.QueryRow(
		ctx,
		`INSERT INTO posts (id, title, slug, feature_image, content_html, category, meta_description, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		post.ID,
		post.Title,
		post.Slug,
		post.FeatureImage,
		post.ContentHTML,
		post.Category,
		post.MetaDescription,
		post.Tags,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, repository.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return &post, nil
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	row := r.db.QueryRow(
		ctx,
		"SELECT "+postColumns+" FROM posts WHERE slug = $1",
		slug,
	)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("select post by slug: %w", err)
	}
	return post, nil
}

func (r *postRepo) ListByCategory(ctx context.Context, category models.Category, limit int) ([]*models.Post, error) {
	limit = repository.ClampLimit(limit)

	rows, err := r.db.Query(
		ctx,
		"SELECT "+postColumns+" FROM posts WHERE category = $1 ORDER BY updated_at DESC LIMIT $2",
		category,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select posts by category: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postRepo) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	limit = repository.ClampLimit(limit)

	rows, err := r.db.Query(
		ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY updated_at DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select recent posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postRepo) UpdateBySlug(ctx context.Context, slug string, post models.Post) (*models.Post, error) {
	if post.Tags == nil {
		post.Tags = []string{}
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE posts
		SET title = $2, feature_image = $3, content_html = $4, category = $5, meta_description = $6, tags = $7, updated_at = now()
		WHERE slug = $1
		RETURNING `+postColumns,
		slug,
		post.Title,
		post.FeatureImage,
		post.ContentHTML,
		post.Category,
		post.MetaDescription,
		post.Tags,
	)
	updated, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func (r *postRepo) Search(ctx context.Context, query string) ([]*models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Post{}, nil
	}

	// Substring match against the title or any single tag, mirroring the
	// site's regex search. LIKE metacharacters in the query are escaped so
	// they match literally.
	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.db.Query(
		ctx,
		`SELECT `+postColumns+` FROM posts
		WHERE title ILIKE $1 OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1)
		ORDER BY updated_at DESC
		LIMIT $2`,
		pattern,
		repository.SearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postRepo) RelatedTo(ctx context.Context, id uuid.UUID, category models.Category, tags []string) ([]*models.Post, error) {
	if tags == nil {
		tags = []string{}
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+postColumns+` FROM posts
		WHERE id <> $1 AND (category = $2 OR tags && $3)
		ORDER BY updated_at DESC
		LIMIT $4`,
		id,
		category,
		tags,
		repository.RelatedLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("select related posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postRepo) ListForSitemap(ctx context.Context) ([]repository.SitemapEntry, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT slug, updated_at FROM posts ORDER BY updated_at DESC LIMIT $1",
		repository.SitemapLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("select sitemap entries: %w", err)
	}
	defer rows.Close()

	var entries []repository.SitemapEntry
	for rows.Next() {
		var e repository.SitemapEntry
		if err := rows.Scan(&e.Slug, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sitemap entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.FeatureImage,
		&p.ContentHTML,
		&p.Category,
		&p.MetaDescription,
		&p.Tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]*models.Post, error) {
	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
