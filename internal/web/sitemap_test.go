package web

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkaridekho/examinfo/internal/repository"
)

func TestBuildSitemap(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	updated := now.AddDate(0, 0, -2)

	set := BuildSitemap("https://www.sarkaridekho.example", now, []repository.SitemapEntry{
		{Slug: "ssc-cgl-2025", UpdatedAt: updated},
		{Slug: "upsc-prelims", UpdatedAt: now},
	})

	// Homepage, six category routes, two posts
	require.Len(t, set.URLs, 9)
	assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", set.XMLNS)

	home := set.URLs[0]
	assert.Equal(t, "https://www.sarkaridekho.example/", home.Loc)
	assert.Equal(t, 1.0, home.Priority)
	assert.Equal(t, "daily", home.ChangeFreq)

	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Contains(t, locs, "https://www.sarkaridekho.example/latest-jobs")
	assert.Contains(t, locs, "https://www.sarkaridekho.example/result")
	assert.Contains(t, locs, "https://www.sarkaridekho.example/admit-card")
	assert.Contains(t, locs, "https://www.sarkaridekho.example/answer-key")
	assert.Contains(t, locs, "https://www.sarkaridekho.example/syllabus")
	assert.Contains(t, locs, "https://www.sarkaridekho.example/admission")

	for _, u := range set.URLs[1:7] {
		assert.Equal(t, 0.8, u.Priority)
		assert.Equal(t, "daily", u.ChangeFreq)
	}

	post := set.URLs[7]
	assert.Equal(t, "https://www.sarkaridekho.example/post/ssc-cgl-2025", post.Loc)
	assert.Equal(t, updated.Format(time.RFC3339), post.LastMod, "post lastmod must reflect its own update time")
	assert.Equal(t, 0.6, post.Priority)
	assert.Equal(t, "weekly", post.ChangeFreq)
}

func TestBuildSitemapNoPosts(t *testing.T) {
	set := BuildSitemap("https://www.sarkaridekho.example", time.Now(), nil)
	assert.Len(t, set.URLs, 7)
}

func TestRobotsBody(t *testing.T) {
	body := robotsBody("https://www.sarkaridekho.example")

	assert.True(t, strings.HasPrefix(body, "User-agent: *\n"))
	for _, line := range []string{
		"Allow: /",
		"Disallow: /admin/",
		"Disallow: /api/",
		"Disallow: /admin.html",
		"Disallow: /edit.html",
		"Disallow: /images.html",
		"Disallow: /private/",
		"Sitemap: https://www.sarkaridekho.example/sitemap.xml",
	} {
		assert.Contains(t, body, line+"\n")
	}
}
