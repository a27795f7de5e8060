package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sarkaridekho/examinfo/internal/cache"
	"github.com/sarkaridekho/examinfo/internal/config"
	"github.com/sarkaridekho/examinfo/internal/logger"
	"github.com/sarkaridekho/examinfo/internal/models"
	"github.com/sarkaridekho/examinfo/internal/repository"
	"golang.org/x/sync/errgroup"
)

// sanitizer strips script and event-handler vectors from stored post HTML
// before it is injected into the detail page. Content is trusted only after
// this pass, never at write time.
var sanitizer = bluemonday.UGCPolicy()

const categoryPageLimit = 50

type Handlers struct {
	config    *config.Config
	posts     repository.PostRepository
	pages     cache.PageCache
	templates *TemplateRegistry
}

func NewHandlers(cfg *config.Config, posts repository.PostRepository, pages cache.PageCache, templates *TemplateRegistry) *Handlers {
	return &Handlers{
		config:    cfg,
		posts:     posts,
		pages:     pages,
		templates: templates,
	}
}

// SetupRoutes mounts the rendered pages. The catch-all category route goes
// last so it cannot shadow the fixed paths.
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/", handlers.Home)
	app.Get("/post/:slug", handlers.Post)
	app.Get("/search", handlers.Search)
	app.Get("/sitemap.xml", handlers.Sitemap)
	app.Get("/robots.txt", handlers.Robots)
	app.Get("/:category", handlers.Category)
}

// Home renders the homepage: the latest posts of all six categories fetched
// in parallel, a ticker line, and the editorial highlight blocks. Any fetch
// failure fails the whole render.
func (h *Handlers) Home(c *fiber.Ctx) error {
	return h.servePage(c, "/", func() ([]byte, error) {
		limit := h.config.HomeSectionLimit

		// Fan out one fetch per category; each goroutine writes its own
		// slot, the failure of any one fails the page.
		fetched := make([][]*models.Post, len(models.Categories))
		g, ctx := errgroup.WithContext(c.Context())
		for i, category := range models.Categories {
			i, category := i, category
			g.Go(func() error {
				posts, err := h.posts.ListByCategory(ctx, category, limit)
				if err != nil {
					return fmt.Errorf("fetch %s posts: %w", category, err)
				}
				fetched[i] = posts
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		sections := make(map[models.Category][]*models.Post, len(models.Categories))
		for i, category := range models.Categories {
			sections[category] = fetched[i]
		}

		now := time.Now()
		view := homeView{
			Jobs:       newPostCards(sections[models.CategoryLatestJobs], now),
			Results:    newPostCards(sections[models.CategoryResult], now),
			AdmitCards: newPostCards(sections[models.CategoryAdmitCard], now),
			AnswerKeys: newPostCards(sections[models.CategoryAnswerKey], now),
			Syllabus:   newPostCards(sections[models.CategorySyllabus], now),
			Admission:  newPostCards(sections[models.CategoryAdmission], now),
		}
		if len(view.Jobs) > 0 {
			view.TickerJob = view.Jobs[0].Title
		}
		if len(view.Results) > 0 {
			view.TickerResult = view.Results[0].Title
		}
		if len(view.AdmitCards) > 0 {
			view.TickerAdmit = view.AdmitCards[0].Title
		}

		return h.templates.Render("home.html", view)
	})
}

// Category renders a category listing grid, flagging posts updated within
// the last 7 days. Unknown categories render the not-found page.
func (h *Handlers) Category(c *fiber.Ctx) error {
	info, ok := CategoryLookup(c.Params("category"))
	if !ok {
		return h.renderNotFound(c)
	}

	return h.servePage(c, "/"+info.Slug, func() ([]byte, error) {
		category, _ := models.ParseCategory(info.Slug)
		posts, err := h.posts.ListByCategory(c.Context(), category, categoryPageLimit)
		if err != nil {
			return nil, err
		}

		return h.templates.Render("category.html", categoryView{
			Info:  info,
			Posts: newPostCards(posts, time.Now()),
		})
	})
}

// Post renders the detail page: sanitized content, structured metadata and
// the related-posts rail.
func (h *Handlers) Post(c *fiber.Ctx) error {
	post, err := h.posts.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return h.renderNotFound(c)
		}
		return err
	}

	related, err := h.posts.RelatedTo(c.Context(), post.ID, post.Category, post.Tags)
	if err != nil {
		return err
	}

	info := categoryInfo[post.Category]
	view := postView{
		Title:           post.Title,
		MetaDescription: post.MetaDescription,
		Tags:            post.Tags,
		CategorySlug:    info.Slug,
		CategoryLabel:   info.Label,
		FeatureImage:    post.FeatureImage,
		UpdatedDisplay:  post.UpdatedAt.Format("02/01/2006"),
		ContentHTML:     SanitizeContent(post.ContentHTML),
		JSONLD:          newsArticleJSONLD(post),
		Related:         newPostCards(related, time.Now()),
	}

	html, err := h.templates.Render("post.html", view)
	if err != nil {
		return err
	}
	return c.Type("html").Send(html)
}

// Search renders the free-text results page. Empty queries short-circuit to
// zero results; there is no fallback listing.
func (h *Handlers) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	results := []*models.Post{}
	if query != "" {
		var err error
		results, err = h.posts.Search(c.Context(), query)
		if err != nil {
			return err
		}
	}

	html, err := h.templates.Render("search.html", searchView{
		Query:   query,
		Count:   len(results),
		Results: newPostCards(results, time.Now()),
	})
	if err != nil {
		return err
	}
	return c.Type("html").Send(html)
}

// SanitizeContent runs stored post HTML through the UGC policy.
func SanitizeContent(contentHTML string) template.HTML {
	return template.HTML(sanitizer.Sanitize(contentHTML))
}

// servePage serves path from the page cache when possible, otherwise renders
// and stores the result. Cache failures log and fall through to a fresh
// render.
func (h *Handlers) servePage(c *fiber.Ctx, path string, render func() ([]byte, error)) error {
	if html, ok, err := h.pages.GetPage(c.Context(), path); err != nil {
		logger.Get().Error().Err(err).Str("path", path).Msg("Page cache read failed")
	} else if ok {
		return c.Type("html").Send(html)
	}

	html, err := render()
	if err != nil {
		return err
	}

	if err := h.pages.SetPage(c.Context(), path, html); err != nil {
		logger.Get().Error().Err(err).Str("path", path).Msg("Page cache write failed")
	}

	return c.Type("html").Send(html)
}

func (h *Handlers) renderNotFound(c *fiber.Ctx) error {
	html, err := h.templates.Render("notfound.html", nil)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusNotFound).Type("html").Send(html)
}

// newsArticleJSONLD emits the schema.org NewsArticle block consumed by
// search engines on the detail page.
func newsArticleJSONLD(post *models.Post) template.JS {
	images := []string{}
	if post.FeatureImage != "" {
		images = append(images, post.FeatureImage)
	}

	doc := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "NewsArticle",
		"headline":      post.Title,
		"description":   post.MetaDescription,
		"image":         images,
		"datePublished": post.CreatedAt.Format(time.RFC3339),
		"dateModified":  post.UpdatedAt.Format(time.RFC3339),
		"author": map[string]string{
			"@type": "Organization",
			"name":  "Sarkari Exam Info",
		},
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return template.JS(encoded)
}
