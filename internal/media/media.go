// Package media proxies image storage to S3. Object keys are partitioned by
// upload month: {mon-yyyy}/{slug}.{ext}, e.g. jan-2025/ssc-cgl-2025.png.
// Media objects live independently of posts; deleting one never touches the
// other.
package media

import (
	"context"
	"io"
	"strings"
	"time"
)

// Object describes one stored image, key decomposed into folder and filename.
type Object struct {
	Folder   string `json:"folder"`
	Filename string `json:"filename"`
	Key      string `json:"key"`
	URL      string `json:"url"`
}

// UploadResult is returned by Upload.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Store is the media storage contract backed by S3 in production.
type Store interface {
	Upload(ctx context.Context, slug, filename, contentType string, body io.Reader) (*UploadResult, error)
	List(ctx context.Context) ([]Object, error)
	Delete(ctx context.Context, key string) error
}

// MonthFolder derives the date-partitioned folder name from t, e.g. "jan-2025".
func MonthFolder(t time.Time) string {
	return strings.ToLower(t.Format("Jan-2006"))
}

// BuildKey computes the storage key for a slug uploaded at t. The extension
// is whatever follows the last dot of the original filename; a filename
// without a dot is used whole, matching the site's historical behavior.
func BuildKey(slug, filename string, t time.Time) string {
	ext := filename
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i+1:]
	}
	return MonthFolder(t) + "/" + slug + "." + ext
}
