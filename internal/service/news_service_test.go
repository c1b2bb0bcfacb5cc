package service

import (
	"context"
	"fmt"
	"testing"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestNewsService(db *gorm.DB) NewsService {
	return NewNewsService(
		repository.NewNewsRepository(db),
		repository.NewGameRepository(db),
		nil,
		nil,
	)
}

func TestCreateNewsLinksGame(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestNewsService(db)

	editor := createTestUser(t, db, "editor")
	game := createTestGame(t, db, "Linked Game")

	slug := game.Slug
	res, err := svc.CreateNews(ctx, editor.ID.String(), dto.CreateNewsRequest{
		Title:      "Expansion Announced",
		Content:    "big news",
		GameSlug:   &slug,
		IsFeatured: true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "expansion-announced", res.Slug)
	assert.True(t, res.IsFeatured)
	require.NotNil(t, res.GameSlug)
	assert.Equal(t, game.Slug, *res.GameSlug)
	assert.Equal(t, "editor", res.Author.Username)

	unknown := "no-such-game"
	_, err = svc.CreateNews(ctx, editor.ID.String(), dto.CreateNewsRequest{
		Title:    "Broken Link",
		Content:  "oops",
		GameSlug: &unknown,
	}, nil)
	assert.Error(t, err)
}

func TestGetNewsCountsEveryView(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestNewsService(db)

	editor := createTestUser(t, db, "editor")
	res, err := svc.CreateNews(ctx, editor.ID.String(), dto.CreateNewsRequest{
		Title:   "Viewed Often",
		Content: "body",
	}, nil)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := svc.GetNewsBySlug(ctx, res.Slug)
		require.NoError(t, err)
	}

	fetched, err := svc.GetNewsBySlug(ctx, res.Slug)
	require.NoError(t, err)
	assert.Equal(t, 5, fetched.Views)
}

func TestListNewsFiltersByGame(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestNewsService(db)

	editor := createTestUser(t, db, "editor")
	gameA := createTestGame(t, db, "Game A")
	gameB := createTestGame(t, db, "Game B")

	for i, game := range []*model.Game{gameA, gameA, gameB} {
		slug := game.Slug
		_, err := svc.CreateNews(ctx, editor.ID.String(), dto.CreateNewsRequest{
			Title:    fmt.Sprintf("Article %d", i),
			Content:  "body",
			GameSlug: &slug,
		}, nil)
		require.NoError(t, err)
	}

	page, err := svc.ListNews(ctx, dto.NewsFilter{Game: gameA.Slug})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.TotalItems)

	page, err = svc.ListNews(ctx, dto.NewsFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Meta.TotalItems)

	// An unknown game slug narrows to nothing rather than erroring.
	page, err = svc.ListNews(ctx, dto.NewsFilter{Game: "no-such-game"})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Meta.TotalItems)
}

func TestUpdateNewsDetachesGame(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestNewsService(db)

	editor := createTestUser(t, db, "editor")
	game := createTestGame(t, db, "Detached Game")

	slug := game.Slug
	res, err := svc.CreateNews(ctx, editor.ID.String(), dto.CreateNewsRequest{
		Title:    "Attached",
		Content:  "body",
		GameSlug: &slug,
	}, nil)
	require.NoError(t, err)

	empty := ""
	updated, err := svc.UpdateNews(ctx, res.Slug, dto.UpdateNewsRequest{GameSlug: &empty}, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.GameSlug)
}

func TestDeleteNews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestNewsService(db)

	editor := createTestUser(t, db, "editor")
	res, err := svc.CreateNews(ctx, editor.ID.String(), dto.CreateNewsRequest{
		Title:   "Short Lived",
		Content: "body",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNews(ctx, res.Slug))

	_, err = svc.GetNewsBySlug(ctx, res.Slug)
	assert.Error(t, err)
}
