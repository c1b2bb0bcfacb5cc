package service

import (
	"context"
	"testing"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestGuideService(db *gorm.DB) GuideService {
	userRepo := repository.NewUserRepository(db)
	return NewGuideService(
		repository.NewGuideRepository(db),
		repository.NewGameRepository(db),
		userRepo,
		NewRatingService(repository.NewRatingRepository(db), userRepo),
		nil,
		nil,
	)
}

func TestCreateGuideEarnsReputation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestGuideService(db)

	author := createTestUser(t, db, "author")
	game := createTestGame(t, db, "Guided Game")

	res, err := svc.CreateGuide(ctx, author.ID.String(), dto.CreateGuideRequest{
		Title:      "Beating the Final Boss",
		GameSlug:   game.Slug,
		Content:    "dodge left",
		Difficulty: model.DifficultyAdvanced,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "beating-the-final-boss", res.Slug)
	assert.Equal(t, game.Slug, res.GameSlug)
	assert.Equal(t, "author", res.Author.Username)

	rating, err := repository.NewRatingRepository(db).FindByUserID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Score)
}

func TestCreateGuideRejectsUnknownGame(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestGuideService(db)

	author := createTestUser(t, db, "author")

	_, err := svc.CreateGuide(ctx, author.ID.String(), dto.CreateGuideRequest{
		Title:      "Orphan Guide",
		GameSlug:   "missing-game",
		Content:    "n/a",
		Difficulty: model.DifficultyBeginner,
	}, nil)
	assert.Error(t, err)
}

func TestGetGuideCountsEveryView(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestGuideService(db)

	author := createTestUser(t, db, "author")
	game := createTestGame(t, db, "Viewed Game")

	res, err := svc.CreateGuide(ctx, author.ID.String(), dto.CreateGuideRequest{
		Title:      "Popular Guide",
		GameSlug:   game.Slug,
		Content:    "body",
		Difficulty: model.DifficultyBeginner,
	}, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := svc.GetGuideBySlug(ctx, res.Slug)
		require.NoError(t, err)
	}

	fetched, err := svc.GetGuideBySlug(ctx, res.Slug)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.Views)
}

func TestListGuidesFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestGuideService(db)

	author := createTestUser(t, db, "author")
	gameA := createTestGame(t, db, "Filter A")
	gameB := createTestGame(t, db, "Filter B")

	guides := []struct {
		title      string
		game       string
		difficulty string
	}{
		{"Alpha", gameA.Slug, model.DifficultyBeginner},
		{"Beta", gameA.Slug, model.DifficultyAdvanced},
		{"Gamma", gameB.Slug, model.DifficultyBeginner},
	}
	for _, g := range guides {
		_, err := svc.CreateGuide(ctx, author.ID.String(), dto.CreateGuideRequest{
			Title:      g.title,
			GameSlug:   g.game,
			Content:    "body",
			Difficulty: g.difficulty,
		}, nil)
		require.NoError(t, err)
	}

	page, err := svc.ListGuides(ctx, dto.GuideFilter{Game: gameA.Slug})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.TotalItems)

	page, err = svc.ListGuides(ctx, dto.GuideFilter{Difficulty: model.DifficultyBeginner})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.TotalItems)

	page, err = svc.ListGuides(ctx, dto.GuideFilter{Game: gameA.Slug, Difficulty: model.DifficultyBeginner})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Meta.TotalItems)
	assert.Equal(t, "Alpha", page.Data[0].Title)

	// An unknown game slug narrows to nothing rather than erroring.
	page, err = svc.ListGuides(ctx, dto.GuideFilter{Game: "no-such-game"})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Meta.TotalItems)
}

func TestUpdateGuideAuthorization(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestGuideService(db)

	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")
	staff := createTestUser(t, db, "moderator")
	require.NoError(t, db.Model(&model.User{}).
		Where("id = ?", staff.ID).
		Update("is_staff", true).Error)
	game := createTestGame(t, db, "Guarded Game")

	res, err := svc.CreateGuide(ctx, author.ID.String(), dto.CreateGuideRequest{
		Title:      "Original",
		GameSlug:   game.Slug,
		Content:    "v1",
		Difficulty: model.DifficultyBeginner,
	}, nil)
	require.NoError(t, err)

	newContent := "v2"
	_, err = svc.UpdateGuide(ctx, stranger.ID.String(), res.Slug, dto.UpdateGuideRequest{Content: &newContent}, nil)
	assert.Error(t, err)

	updated, err := svc.UpdateGuide(ctx, staff.ID.String(), res.Slug, dto.UpdateGuideRequest{Content: &newContent}, nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
}

func TestDeleteGuideRevokesReputation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestGuideService(db)

	author := createTestUser(t, db, "author")
	game := createTestGame(t, db, "Short Game")

	res, err := svc.CreateGuide(ctx, author.ID.String(), dto.CreateGuideRequest{
		Title:      "Fleeting Guide",
		GameSlug:   game.Slug,
		Content:    "body",
		Difficulty: model.DifficultyIntermediate,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGuide(ctx, author.ID.String(), res.Slug))

	rating, err := repository.NewRatingRepository(db).FindByUserID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, rating.Score)

	_, err = svc.GetGuideBySlug(ctx, res.Slug)
	assert.Error(t, err)
}
