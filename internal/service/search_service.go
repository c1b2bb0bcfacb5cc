package service

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"gamehub/backend/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// Search index names.
const (
	IndexGames  = "games"
	IndexNews   = "news"
	IndexGuides = "guides"
)

// SearchService keeps the Meilisearch indexes in sync with the catalog and
// content tables and resolves free-text queries to row IDs.
type SearchService interface {
	IndexGame(game *model.Game) error
	IndexNews(news *model.News) error
	IndexGuide(guide *model.Guide) error
	DeleteDocument(index, id string) error
	// Search returns matching document IDs, best first.
	Search(index, query string, limit int) ([]string, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	for index, sortable := range map[string][]string{
		IndexGames:  {"release_date", "rating"},
		IndexNews:   {"created_at", "views"},
		IndexGuides: {"created_at", "views"},
	} {
		attrs := sortable
		if _, err := s.client.Index(index).UpdateSortableAttributes(&attrs); err != nil {
			log.Printf("failed to update %s sortable attributes: %v", index, err)
		}
	}

	log.Println("meilisearch indexes initialized")
}

type gameDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Developer   string `json:"developer"`
	Publisher   string `json:"publisher"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
	Rating      float64 `json:"rating"`
	ReleaseDate int64  `json:"release_date"`
}

type contentDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Views     int    `json:"views"`
	CreatedAt int64  `json:"created_at"`
}

// cleanContent strips markup so only readable text is indexed.
func (s *searchService) cleanContent(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")

	clean := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(clean), " ")
}

func (s *searchService) IndexGame(game *model.Game) error {
	doc := gameDoc{
		ID:          game.ID.String(),
		Title:       game.Title,
		Slug:        game.Slug,
		Developer:   game.Developer,
		Publisher:   game.Publisher,
		Platform:    game.Platform,
		Description: s.cleanContent(game.Description),
		Rating:      game.Rating,
		ReleaseDate: game.ReleaseDate.Unix(),
	}
	_, err := s.client.Index(IndexGames).AddDocuments([]gameDoc{doc}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("failed to index game %s: %w", game.Slug, err)
	}
	return nil
}

func (s *searchService) IndexNews(news *model.News) error {
	doc := contentDoc{
		ID:        news.ID.String(),
		Title:     news.Title,
		Slug:      news.Slug,
		Content:   s.cleanContent(news.Content),
		Views:     news.Views,
		CreatedAt: news.CreatedAt.Unix(),
	}
	_, err := s.client.Index(IndexNews).AddDocuments([]contentDoc{doc}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("failed to index news %s: %w", news.Slug, err)
	}
	return nil
}

func (s *searchService) IndexGuide(guide *model.Guide) error {
	doc := contentDoc{
		ID:        guide.ID.String(),
		Title:     guide.Title,
		Slug:      guide.Slug,
		Content:   s.cleanContent(guide.Content),
		Views:     guide.Views,
		CreatedAt: guide.CreatedAt.Unix(),
	}
	_, err := s.client.Index(IndexGuides).AddDocuments([]contentDoc{doc}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("failed to index guide %s: %w", guide.Slug, err)
	}
	return nil
}

func (s *searchService) DeleteDocument(index, id string) error {
	_, err := s.client.Index(index).DeleteDocument(id)
	return err
}

func (s *searchService) Search(index, query string, limit int) ([]string, error) {
	resp, err := s.client.Index(index).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed on index %s: %w", index, err)
	}

	return hitIDs(resp.Hits), nil
}

// hitIDs extracts document IDs from search hits. Hit fields are raw JSON;
// only the id is needed here.
func hitIDs(hits meilisearch.Hits) []string {
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		raw, ok := hit["id"]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func strPtr(s string) *string {
	return &s
}
