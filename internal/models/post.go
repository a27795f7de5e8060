package models

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a post into one of the six fixed site sections.
type Category string

const (
	CategoryResult     Category = "result"
	CategoryAdmitCard  Category = "admit-card"
	CategoryLatestJobs Category = "latest-jobs"
	CategoryAnswerKey  Category = "answer-key"
	CategorySyllabus   Category = "syllabus"
	CategoryAdmission  Category = "admission"
)

// Categories lists every valid category in homepage display order.
var Categories = []Category{
	CategoryResult,
	CategoryAdmitCard,
	CategoryLatestJobs,
	CategoryAnswerKey,
	CategorySyllabus,
	CategoryAdmission,
}

// ParseCategory validates a raw path/body value against the fixed set.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

func (c Category) String() string { return string(c) }

// Post is a single exam-related announcement. ContentHTML is stored raw and
// sanitized at render time, never at write time.
type Post struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	FeatureImage    string    `json:"featureImage"`
	ContentHTML     string    `json:"contentHtml"`
	Category        Category  `json:"category"`
	MetaDescription string    `json:"metaDescription"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreatePostInput is the validated body of POST /api/posts.
type CreatePostInput struct {
	Title           string   `json:"title" validate:"required"`
	Slug            string   `json:"slug" validate:"required"`
	FeatureImage    string   `json:"featureImage"`
	ContentHTML     string   `json:"contentHtml" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	MetaDescription string   `json:"metaDescription" validate:"required"`
	Tags            []string `json:"tags"`
}

// UpdatePostInput is the validated body of PUT /api/posts. The slug
// identifies the post and is never changed by an update.
type UpdatePostInput struct {
	Slug            string   `json:"slug" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	FeatureImage    string   `json:"featureImage"`
	ContentHTML     string   `json:"contentHtml" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	MetaDescription string   `json:"metaDescription" validate:"required"`
	Tags            []string `json:"tags"`
}
