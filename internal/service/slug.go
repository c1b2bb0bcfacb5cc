package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Slugify derives a URL-safe identifier from a title: lowercase, spaces to
// hyphens, everything outside [a-z0-9-_] dropped.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")

	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	slug = strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "untitled"
	}
	return slug
}

// UniqueSlug appends a short random suffix when the base slug is taken.
// exists reports whether a slug is already in use.
func UniqueSlug(title string, exists func(slug string) bool) string {
	slug := Slugify(title)
	if !exists(slug) {
		return slug
	}
	return fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
}

// TruncatePreview shortens a title for notification messages.
func TruncatePreview(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}
