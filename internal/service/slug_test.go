package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "elden-ring", Slugify("Elden Ring"))
	assert.Equal(t, "baldurs-gate-3", Slugify("Baldur's Gate 3"))
	assert.Equal(t, "half-life-2_ep1", Slugify("  Half-Life 2_EP1  "))
	assert.Equal(t, "untitled", Slugify("!!!"))
	assert.Equal(t, "untitled", Slugify(""))
}

func TestUniqueSlugAppendsSuffixWhenTaken(t *testing.T) {
	taken := map[string]bool{"elden-ring": true}
	exists := func(slug string) bool { return taken[slug] }

	slug := UniqueSlug("Elden Ring", exists)
	assert.True(t, strings.HasPrefix(slug, "elden-ring-"))
	assert.Len(t, slug, len("elden-ring-")+8)

	assert.Equal(t, "dark-souls", UniqueSlug("Dark Souls", exists))
}

func TestTruncatePreview(t *testing.T) {
	assert.Equal(t, "short", TruncatePreview("short", 30))
	assert.Equal(t, "exactly-ten", TruncatePreview("exactly-ten", 11))

	long := strings.Repeat("a", 40)
	assert.Equal(t, strings.Repeat("a", 30)+"...", TruncatePreview(long, 30))

	// Truncation must not split multibyte runes.
	assert.Equal(t, "ααα...", TruncatePreview("αααααα", 3))
}
