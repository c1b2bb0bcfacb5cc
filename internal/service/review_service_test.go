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

func newTestReviewService(db *gorm.DB) ReviewService {
	userRepo := repository.NewUserRepository(db)
	ratingSvc := NewRatingService(repository.NewRatingRepository(db), userRepo)
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewGameRepository(db),
		userRepo,
		ratingSvc,
	)
}

func gameRating(t *testing.T, db *gorm.DB, gameID interface{}) float64 {
	t.Helper()
	var game model.Game
	require.NoError(t, db.First(&game, "id = ?", gameID).Error)
	return game.Rating
}

func TestCreateReviewRefreshesGameRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestReviewService(db)

	game := createTestGame(t, db, "Review Target")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	res, err := svc.CreateReview(ctx, alice.ID.String(), dto.CreateReviewRequest{
		GameSlug: game.Slug,
		Content:  "great",
		Rating:   8,
		Pros:     "fun",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Rating)
	assert.Equal(t, game.Slug, res.GameSlug)
	assert.Equal(t, "alice", res.Author.Username)
	assert.Equal(t, 8.0, gameRating(t, db, game.ID))

	_, err = svc.CreateReview(ctx, bob.ID.String(), dto.CreateReviewRequest{
		GameSlug: game.Slug,
		Content:  "ok",
		Rating:   6,
	})
	require.NoError(t, err)
	assert.Equal(t, 7.0, gameRating(t, db, game.ID))
}

func TestCreateReviewRejectsUnknownGame(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestReviewService(db)

	alice := createTestUser(t, db, "alice")

	_, err := svc.CreateReview(ctx, alice.ID.String(), dto.CreateReviewRequest{
		GameSlug: "does-not-exist",
		Content:  "great",
		Rating:   8,
	})
	assert.Error(t, err)
}

func TestUpdateReviewAuthorization(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestReviewService(db)

	game := createTestGame(t, db, "Guarded Game")
	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")
	staff := createTestUser(t, db, "moderator")
	require.NoError(t, db.Model(&model.User{}).
		Where("id = ?", staff.ID).
		Update("is_staff", true).Error)

	res, err := svc.CreateReview(ctx, author.ID.String(), dto.CreateReviewRequest{
		GameSlug: game.Slug,
		Content:  "original",
		Rating:   5,
	})
	require.NoError(t, err)

	newRating := 9
	_, err = svc.UpdateReview(ctx, stranger.ID.String(), res.ID, dto.UpdateReviewRequest{Rating: &newRating})
	assert.Error(t, err)

	updated, err := svc.UpdateReview(ctx, staff.ID.String(), res.ID, dto.UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Rating)
	assert.Equal(t, 9.0, gameRating(t, db, game.ID))
}

func TestDeleteReviewKeepsLastRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestReviewService(db)

	game := createTestGame(t, db, "Shrinking Game")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	first, err := svc.CreateReview(ctx, alice.ID.String(), dto.CreateReviewRequest{
		GameSlug: game.Slug,
		Content:  "a",
		Rating:   4,
	})
	require.NoError(t, err)
	second, err := svc.CreateReview(ctx, bob.ID.String(), dto.CreateReviewRequest{
		GameSlug: game.Slug,
		Content:  "b",
		Rating:   8,
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, gameRating(t, db, game.ID))

	require.NoError(t, svc.DeleteReview(ctx, alice.ID.String(), first.ID))
	assert.Equal(t, 8.0, gameRating(t, db, game.ID))

	// Removing the last review leaves the cached rating in place.
	require.NoError(t, svc.DeleteReview(ctx, bob.ID.String(), second.ID))
	assert.Equal(t, 8.0, gameRating(t, db, game.ID))
}

func TestListReviewsByGamePaginates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestReviewService(db)

	game := createTestGame(t, db, "Busy Game")
	for i := 0; i < 3; i++ {
		user := createTestUser(t, db, "reviewer"+string(rune('a'+i)))
		_, err := svc.CreateReview(ctx, user.ID.String(), dto.CreateReviewRequest{
			GameSlug: game.Slug,
			Content:  "review",
			Rating:   5,
		})
		require.NoError(t, err)
	}

	page, err := svc.ListReviewsByGame(ctx, game.Slug, dto.PageQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Meta.TotalItems)
	assert.Equal(t, 2, page.Meta.TotalPages)

	page, err = svc.ListReviewsByGame(ctx, game.Slug, dto.PageQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
}
