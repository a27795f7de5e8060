package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"result", "admit-card", "latest-jobs", "answer-key", "syllabus", "admission"} {
		if _, ok := ParseCategory(valid); !ok {
			t.Errorf("expected %q to be a valid category", valid)
		}
	}

	for _, invalid := range []string{"", "results", "Result", "jobs", "latest_jobs", "unknown"} {
		if _, ok := ParseCategory(invalid); ok {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}

func TestPostJSONFieldNames(t *testing.T) {
	now := time.Now()
	post := Post{
		ID:              uuid.New(),
		Title:           "SSC CGL 2025",
		Slug:            "ssc-cgl-2025",
		FeatureImage:    "https://example.com/img.png",
		ContentHTML:     "<p>x</p>",
		Category:        CategoryLatestJobs,
		MetaDescription: "desc",
		Tags:            []string{"ssc", "cgl"},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	data, err := json.Marshal(post)
	if err != nil {
		t.Fatalf("Failed to marshal Post: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	// API clients depend on these exact key names
	for _, key := range []string{"title", "slug", "featureImage", "contentHtml", "category", "metaDescription", "tags", "createdAt", "updatedAt"} {
		if _, ok := result[key]; !ok {
			t.Errorf("expected JSON key %q to be present", key)
		}
	}

	if result["category"] != "latest-jobs" {
		t.Errorf("expected category to be 'latest-jobs', got %v", result["category"])
	}
}

func TestPostJSONKeepsEmptyFeatureImage(t *testing.T) {
	data, err := json.Marshal(Post{Title: "t", Slug: "s"})
	if err != nil {
		t.Fatalf("Failed to marshal Post: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	// Clients expect the key even for posts without an image
	value, ok := result["featureImage"]
	if !ok {
		t.Fatal("expected featureImage key to be present")
	}
	if value != "" {
		t.Errorf("expected empty featureImage, got %v", value)
	}
}
