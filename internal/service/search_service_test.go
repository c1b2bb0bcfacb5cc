package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
)

func TestHitIDs(t *testing.T) {
	hits := meilisearch.Hits{
		{
			"id":    json.RawMessage(`"0198c3a1-0000-7000-8000-000000000001"`),
			"title": json.RawMessage(`"Elden Ring"`),
		},
		{
			"title": json.RawMessage(`"no id field"`),
		},
		{
			"id": json.RawMessage(`42`),
		},
		{
			"id": json.RawMessage(`"0198c3a1-0000-7000-8000-000000000002"`),
		},
	}

	ids := hitIDs(hits)
	assert.Equal(t, []string{
		"0198c3a1-0000-7000-8000-000000000001",
		"0198c3a1-0000-7000-8000-000000000002",
	}, ids)

	assert.Empty(t, hitIDs(nil))
}

func TestCleanContentStripsMarkup(t *testing.T) {
	svc := &searchService{sanitizer: bluemonday.StrictPolicy()}

	clean := svc.cleanContent("<p>First paragraph</p><p>Second &amp; last</p>")
	assert.Equal(t, "First paragraph Second & last", clean)

	clean = svc.cleanContent("line one<br>line two")
	assert.Equal(t, "line one line two", clean)
}
