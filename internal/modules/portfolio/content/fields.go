package content

import (
	"fmt"
	"strings"
	"time"
)

// PlaceholderImage is used whenever an image record carries no usable URL.
const PlaceholderImage = "/placeholder.jpg"

// Image URL spellings seen on stored image records, in priority order.
var imageURLKeys = []string{
	"file_path", "FilePath",
	"image_url", "ImageUrl", "ImageURL",
	"working_image_url", "WorkingImageURL",
}

// ImageURL picks the first non-empty spelling, falling back to the
// placeholder.
func ImageURL(rec any) string {
	switch v := rec.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	case map[string]any:
		for _, k := range imageURLKeys {
			if s := str(v[k]); s != "" {
				return s
			}
		}
	}
	return PlaceholderImage
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func obj(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// first returns the first non-empty string found under any of the dotted
// paths, searched across the given maps in order.
func first(maps []map[string]any, paths ...string) string {
	for _, path := range paths {
		for _, m := range maps {
			if s := str(lookup(m, path)); s != "" {
				return s
			}
		}
	}
	return ""
}

func lookup(m map[string]any, path string) any {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		cm := obj(cur)
		if cm == nil {
			return nil
		}
		cur = cm[part]
	}
	return cur
}

func list(maps []map[string]any, keys ...string) []any {
	for _, k := range keys {
		for _, m := range maps {
			if arr, ok := m[k].([]any); ok && len(arr) > 0 {
				return arr
			}
		}
	}
	return nil
}

// formatDate shortens RFC3339 timestamps to a calendar date and passes other
// strings through.
func formatDate(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
