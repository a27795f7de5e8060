package api

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sarkaridekho/examinfo/internal/cache"
	"github.com/sarkaridekho/examinfo/internal/config"
	"github.com/sarkaridekho/examinfo/internal/logger"
	"github.com/sarkaridekho/examinfo/internal/media"
	"github.com/sarkaridekho/examinfo/internal/models"
	"github.com/sarkaridekho/examinfo/internal/repository"
)

type Handlers struct {
	config   *config.Config
	posts    repository.PostRepository
	pages    cache.PageCache
	media    media.Store
	validate *validator.Validate
}

func NewHandlers(cfg *config.Config, posts repository.PostRepository, pages cache.PageCache, mediaStore media.Store) *Handlers {
	v := validator.New()
	// Report validation failures under the JSON field name, the way API
	// clients know the fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		config:   cfg,
		posts:    posts,
		pages:    pages,
		media:    mediaStore,
		validate: v,
	}
}

// GetPosts handles GET /api/posts. With ?slug= it fetches a single post;
// otherwise it lists posts, optionally filtered by ?category=, up to ?limit=.
func (h *Handlers) GetPosts(c *fiber.Ctx) error {
	if slug := c.Query("slug"); slug != "" {
		post, err := h.posts.GetBySlug(c.Context(), slug)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return failure(c, fiber.StatusNotFound, "Post not found")
			}
			return h.internalError(c, err, "failed to fetch post")
		}
		return c.JSON(fiber.Map{"success": true, "data": post})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	if raw := c.Query("category"); raw != "" {
		category, ok := models.ParseCategory(raw)
		if !ok {
			// Unknown categories match nothing rather than failing;
			// listing is a read, not a write.
			return c.JSON(fiber.Map{"success": true, "data": []*models.Post{}})
		}
		posts, err := h.posts.ListByCategory(c.Context(), category, limit)
		if err != nil {
			return h.internalError(c, err, "failed to list posts")
		}
		return c.JSON(fiber.Map{"success": true, "data": posts})
	}

	posts, err := h.posts.ListRecent(c.Context(), limit)
	if err != nil {
		return h.internalError(c, err, "failed to list posts")
	}
	return c.JSON(fiber.Map{"success": true, "data": posts})
}

// CreatePost handles POST /api/posts.
func (h *Handlers) CreatePost(c *fiber.Ctx) error {
	var input models.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg, ok := h.validateInput(input); !ok {
		return failure(c, fiber.StatusBadRequest, msg)
	}

	category, ok := models.ParseCategory(input.Category)
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Invalid category: "+input.Category)
	}

	post, err := h.posts.Create(c.Context(), models.Post{
		Title:           input.Title,
		Slug:            input.Slug,
		FeatureImage:    input.FeatureImage,
		ContentHTML:     input.ContentHTML,
		Category:        category,
		MetaDescription: input.MetaDescription,
		Tags:            input.Tags,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return failure(c, fiber.StatusConflict, "A post with this Slug already exists. Please use a unique slug.")
		}
		return h.internalError(c, err, "failed to create post")
	}

	h.invalidatePages(c, "/", "/"+category.String())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": post})
}

// UpdatePost handles PUT /api/posts. The slug identifies the post; the
// remaining fields replace the stored ones.
func (h *Handlers) UpdatePost(c *fiber.Ctx) error {
	var input models.UpdatePostInput
	if err := c.BodyParser(&input); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if msg, ok := h.validateInput(input); !ok {
		return failure(c, fiber.StatusBadRequest, msg)
	}

	category, ok := models.ParseCategory(input.Category)
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Invalid category: "+input.Category)
	}

	// The prior category is needed so its cached listing can be dropped
	// when the update moves the post to another category.
	existing, err := h.posts.GetBySlug(c.Context(), input.Slug)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return failure(c, fiber.StatusNotFound, "Post not found")
		}
		return h.internalError(c, err, "failed to fetch post")
	}

	post, err := h.posts.UpdateBySlug(c.Context(), input.Slug, models.Post{
		Title:           input.Title,
		FeatureImage:    input.FeatureImage,
		ContentHTML:     input.ContentHTML,
		Category:        category,
		MetaDescription: input.MetaDescription,
		Tags:            input.Tags,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return failure(c, fiber.StatusNotFound, "Post not found")
		}
		return h.internalError(c, err, "failed to update post")
	}

	paths := []string{"/", "/" + category.String()}
	if existing.Category != category {
		paths = append(paths, "/"+existing.Category.String())
	}
	h.invalidatePages(c, paths...)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post updated successfully",
		"data":    post,
	})
}

// UploadImage handles POST /api/upload-image (multipart: file + slug).
func (h *Handlers) UploadImage(c *fiber.Ctx) error {
	slug := c.FormValue("slug")
	fileHeader, err := c.FormFile("file")
	if err != nil || slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file and slug are required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.internalError(c, err, "failed to open uploaded file")
	}
	defer file.Close()

	result, err := h.media.Upload(c.Context(), slug, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return h.internalError(c, err, "failed to upload image")
	}

	return c.JSON(result)
}

// ListImages handles GET /api/upload-image.
func (h *Handlers) ListImages(c *fiber.Ctx) error {
	objects, err := h.media.List(c.Context())
	if err != nil {
		return h.internalError(c, err, "failed to list images")
	}
	return c.JSON(objects)
}

// DeleteImage handles POST /api/delete-image.
func (h *Handlers) DeleteImage(c *fiber.Ctx) error {
	var body struct {
		Key string `json:"key"`
	}
	if err := c.BodyParser(&body); err != nil || body.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Key required",
		})
	}

	if err := h.media.Delete(c.Context(), body.Key); err != nil {
		return h.internalError(c, err, "failed to delete image")
	}

	return c.JSON(fiber.Map{"success": true})
}

// Revalidate handles GET /api/revalidate?secret=. It purges every cached
// page so readers see fresh content without waiting for TTL expiry.
func (h *Handlers) Revalidate(c *fiber.Ctx) error {
	// An unset token disables the endpoint rather than opening it.
	if h.config.RevalidationToken == "" || c.Query("secret") != h.config.RevalidationToken {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid token",
		})
	}

	if err := h.pages.PurgeAll(c.Context()); err != nil {
		return h.internalError(c, err, "failed to purge page cache")
	}

	return c.JSON(fiber.Map{
		"revalidated": true,
		"now":         time.Now().UnixMilli(),
	})
}

// validateInput runs struct validation and formats the first failure the way
// the API has always reported it.
func (h *Handlers) validateInput(input any) (string, bool) {
	err := h.validate.Struct(input)
	if err == nil {
		return "", true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "Missing required field: " + verrs[0].Field(), false
	}
	return "Invalid request body", false
}

// invalidatePages drops cached renderings after a successful write.
// Best-effort: a cache failure is logged, never surfaced to the writer.
func (h *Handlers) invalidatePages(c *fiber.Ctx, paths ...string) {
	if err := h.pages.Invalidate(c.Context(), paths...); err != nil {
		logger.Get().Error().Err(err).Strs("paths", paths).Msg("Failed to invalidate page cache")
	}
}

func (h *Handlers) internalError(c *fiber.Ctx, err error, msg string) error {
	logger.Get().Error().Err(err).Str("path", c.Path()).Msg(msg)
	return failure(c, fiber.StatusInternalServerError, "Internal Server Error")
}

func failure(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}
