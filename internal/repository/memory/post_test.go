package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkaridekho/examinfo/internal/models"
	"github.com/sarkaridekho/examinfo/internal/repository"
)

func newPost(slug string, category models.Category, tags ...string) models.Post {
	return models.Post{
		Title:           "Title for " + slug,
		Slug:            slug,
		ContentHTML:     "<p>content</p>",
		Category:        category,
		MetaDescription: "desc",
		Tags:            tags,
	}
}

func TestCreateAndGetBySlug(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newPost("ssc-cgl-2025", models.CategoryLatestJobs, "ssc"))
	require.NoError(t, err)
	assert.NotEqual(t, "", created.ID.String())
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repo.GetBySlug(ctx, "ssc-cgl-2025")
	require.NoError(t, err)
	assert.Equal(t, "Title for ssc-cgl-2025", got.Title)
	assert.Equal(t, models.CategoryLatestJobs, got.Category)
	assert.Equal(t, []string{"ssc"}, got.Tags)
}

func TestCreateDuplicateSlug(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	original, err := repo.Create(ctx, newPost("ssc-cgl-2025", models.CategoryLatestJobs))
	require.NoError(t, err)

	dup := newPost("ssc-cgl-2025", models.CategoryResult)
	dup.Title = "Different title"
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateSlug)

	// The existing record must be untouched
	got, err := repo.GetBySlug(ctx, "ssc-cgl-2025")
	require.NoError(t, err)
	assert.Equal(t, original.Title, got.Title)
	assert.Equal(t, original.Category, got.Category)
}

func TestGetBySlugNotFound(t *testing.T) {
	repo := NewPostRepository()
	_, err := repo.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestUpdateBySlug(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newPost("up-police-result", models.CategoryResult))
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	updated, err := repo.UpdateBySlug(ctx, "up-police-result", models.Post{
		Title:           "UP Police Result (Revised)",
		ContentHTML:     "<p>revised</p>",
		Category:        models.CategoryResult,
		MetaDescription: "revised desc",
		Tags:            []string{"up-police"},
	})
	require.NoError(t, err)
	assert.Equal(t, "UP Police Result (Revised)", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt must strictly increase")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	got, err := repo.GetBySlug(ctx, "up-police-result")
	require.NoError(t, err)
	assert.Equal(t, "UP Police Result (Revised)", got.Title)
	assert.Equal(t, []string{"up-police"}, got.Tags)
}

func TestUpdateBySlugNotFound(t *testing.T) {
	repo := NewPostRepository()
	_, err := repo.UpdateBySlug(context.Background(), "missing", newPost("missing", models.CategoryResult))
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestListByCategorySortedAndLimited(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := repo.Create(ctx, newPost(fmt.Sprintf("job-%d", i), models.CategoryLatestJobs))
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	_, err := repo.Create(ctx, newPost("a-result", models.CategoryResult))
	require.NoError(t, err)

	posts, err := repo.ListByCategory(ctx, models.CategoryLatestJobs, 5)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
	for i, post := range posts {
		assert.Equal(t, models.CategoryLatestJobs, post.Category)
		if i > 0 {
			assert.False(t, posts[i-1].UpdatedAt.Before(post.UpdatedAt), "posts must be sorted by updatedAt descending")
		}
	}

	// Zero limit falls back to the default
	posts, err = repo.ListByCategory(ctx, models.CategoryLatestJobs, 0)
	require.NoError(t, err)
	assert.Len(t, posts, repository.DefaultListLimit)

	// Oversized limits are clamped
	posts, err = repo.ListByCategory(ctx, models.CategoryLatestJobs, 500)
	require.NoError(t, err)
	assert.Len(t, posts, 15)
}

func TestSearch(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, newPost("ssc-cgl-2025", models.CategoryLatestJobs, "SSC", "cgl"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPost("upsc-prelims", models.CategoryResult, "upsc"))
	require.NoError(t, err)

	// Empty and whitespace queries return nothing, not everything
	results, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = repo.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)

	// Case-insensitive title match
	results, err = repo.Search(ctx, "SSC-CGL")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ssc-cgl-2025", results[0].Slug)

	// Substring match against an individual tag
	results, err = repo.Search(ctx, "ps")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "upsc-prelims", results[0].Slug)

	results, err = repo.Search(ctx, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchCapsResults(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := repo.Create(ctx, newPost(fmt.Sprintf("exam-update-%d", i), models.CategoryResult))
		require.NoError(t, err)
	}

	results, err := repo.Search(ctx, "exam-update")
	require.NoError(t, err)
	assert.Len(t, results, repository.SearchLimit)
}

func TestRelatedTo(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	subject, err := repo.Create(ctx, newPost("subject", models.CategoryResult, "ssc"))
	require.NoError(t, err)

	sameCategory, err := repo.Create(ctx, newPost("same-category", models.CategoryResult))
	require.NoError(t, err)
	sharedTag, err := repo.Create(ctx, newPost("shared-tag", models.CategoryAdmission, "ssc"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPost("unrelated", models.CategorySyllabus, "neet"))
	require.NoError(t, err)

	related, err := repo.RelatedTo(ctx, subject.ID, subject.Category, subject.Tags)
	require.NoError(t, err)

	slugs := make([]string, 0, len(related))
	for _, post := range related {
		assert.NotEqual(t, subject.ID, post.ID, "subject must be excluded")
		slugs = append(slugs, post.Slug)
	}
	assert.ElementsMatch(t, []string{sameCategory.Slug, sharedTag.Slug}, slugs)
}

func TestRelatedToCapsResults(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	subject, err := repo.Create(ctx, newPost("subject", models.CategoryResult))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := repo.Create(ctx, newPost(fmt.Sprintf("result-%d", i), models.CategoryResult))
		require.NoError(t, err)
	}

	related, err := repo.RelatedTo(ctx, subject.ID, subject.Category, subject.Tags)
	require.NoError(t, err)
	assert.Len(t, related, repository.RelatedLimit)
}

func TestListForSitemap(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, newPost(fmt.Sprintf("post-%d", i), models.CategoryResult))
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	entries, err := repo.ListForSitemap(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i-1].UpdatedAt.Before(entries[i].UpdatedAt))
	}
}
