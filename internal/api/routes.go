package api

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts the JSON API under /api.
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api")

	posts := api.Group("/posts")
	{
		posts.Get("", handlers.GetPosts)   // List posts, or fetch one by ?slug=
		posts.Post("", handlers.CreatePost)
		posts.Put("", handlers.UpdatePost)
	}

	api.Post("/upload-image", handlers.UploadImage)
	api.Get("/upload-image", handlers.ListImages)
	api.Post("/delete-image", handlers.DeleteImage)

	api.Get("/revalidate", handlers.Revalidate)

	// 404 for unknown API routes
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Endpoint not found",
		})
	})
}
