package web

import (
	"encoding/xml"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sarkaridekho/examinfo/internal/models"
	"github.com/sarkaridekho/examinfo/internal/repository"
)

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// BuildSitemap assembles the sitemap entries: homepage, the six category
// routes, then every post route by recency (capped by the repository).
func BuildSitemap(baseURL string, now time.Time, posts []repository.SitemapEntry) urlSet {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	set.URLs = append(set.URLs, sitemapURL{
		Loc:        baseURL + "/",
		LastMod:    now.Format(time.RFC3339),
		ChangeFreq: "daily",
		Priority:   1.0,
	})
	for _, category := range models.Categories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + "/" + category.String(),
			LastMod:    now.Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   0.8,
		})
	}
	for _, post := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + "/post/" + post.Slug,
			LastMod:    post.UpdatedAt.Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   0.6,
		})
	}

	return set
}

// Sitemap serves /sitemap.xml.
func (h *Handlers) Sitemap(c *fiber.Ctx) error {
	entries, err := h.posts.ListForSitemap(c.Context())
	if err != nil {
		return err
	}

	set := BuildSitemap(h.config.SiteURL, time.Now(), entries)
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.SendString(xml.Header + string(body))
}

// robotsBody is the allow-all policy keeping crawlers out of the admin and
// API surfaces.
func robotsBody(baseURL string) string {
	return "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /admin/\n" +
		"Disallow: /api/\n" +
		"Disallow: /admin.html\n" +
		"Disallow: /edit.html\n" +
		"Disallow: /images.html\n" +
		"Disallow: /private/\n" +
		"\n" +
		"Sitemap: " + baseURL + "/sitemap.xml\n"
}

// Robots serves /robots.txt.
func (h *Handlers) Robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(robotsBody(h.config.SiteURL))
}
