package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user, &model.Profile{}))
	return user
}

func createTestGame(t *testing.T, db *gorm.DB, title string) *model.Game {
	t.Helper()

	game := &model.Game{
		Title:       title,
		Slug:        Slugify(title),
		Developer:   "dev",
		ReleaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Platform:    model.PlatformPC,
		Description: "desc",
	}
	require.NoError(t, db.Create(game).Error)
	return game
}

func TestRecomputeUserScoreWeightsActivity(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "scorer")
	game := createTestGame(t, db, "Test Game")

	// 3 comments, 1 guide, 2 likes given: 3*1 + 1*5 + 2*2 = 12.
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.Comment{
			AuthorID:   user.ID,
			TargetType: model.TargetNews,
			TargetID:   uuid.New(),
			Content:    "hi",
		}).Error)
	}
	require.NoError(t, db.Create(&model.Guide{
		Title:      "Guide",
		Slug:       "guide",
		GameID:     game.ID,
		AuthorID:   user.ID,
		Content:    "content",
		Difficulty: model.DifficultyBeginner,
	}).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&model.Like{
			UserID:     user.ID,
			TargetType: model.TargetNews,
			TargetID:   uuid.New(),
			Vote:       model.VoteLike,
		}).Error)
	}
	// Dislikes do not score.
	require.NoError(t, db.Create(&model.Like{
		UserID:     user.ID,
		TargetType: model.TargetNews,
		TargetID:   uuid.New(),
		Vote:       model.VoteDislike,
	}).Error)

	ratingRepo := repository.NewRatingRepository(db)
	svc := NewRatingService(ratingRepo, repository.NewUserRepository(db))

	score, err := svc.RecomputeUserScore(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, score)

	stored, err := ratingRepo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Score)

	// A second run over the same rows lands on the same score.
	score, err = svc.RecomputeUserScore(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, score)
}

func TestRecomputeGameRatingAveragesReviews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	game := createTestGame(t, db, "Rated Game")
	for i, r := range []int{4, 6, 8} {
		author := createTestUser(t, db, fmt.Sprintf("reviewer%d", i))
		require.NoError(t, db.Create(&model.Review{
			GameID:   game.ID,
			AuthorID: author.ID,
			Content:  "review",
			Rating:   r,
		}).Error)
	}

	svc := NewRatingService(repository.NewRatingRepository(db), repository.NewUserRepository(db))

	rating, err := svc.RecomputeGameRating(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, rating)

	var stored model.Game
	require.NoError(t, db.First(&stored, "id = ?", game.ID).Error)
	assert.Equal(t, 6.0, stored.Rating)
}

func TestRecomputeGameRatingRoundsToOneDecimal(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	game := createTestGame(t, db, "Rounded Game")
	for i, r := range []int{7, 8, 8} {
		author := createTestUser(t, db, fmt.Sprintf("rounder%d", i))
		require.NoError(t, db.Create(&model.Review{
			GameID:   game.ID,
			AuthorID: author.ID,
			Content:  "review",
			Rating:   r,
		}).Error)
	}

	svc := NewRatingService(repository.NewRatingRepository(db), repository.NewUserRepository(db))

	rating, err := svc.RecomputeGameRating(ctx, game.ID)
	require.NoError(t, err)
	// 23/3 = 7.666..., rounded to 7.7.
	assert.Equal(t, 7.7, rating)
}

func TestRecomputeGameRatingKeepsValueWithoutReviews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	game := createTestGame(t, db, "Quiet Game")
	require.NoError(t, db.Model(&model.Game{}).
		Where("id = ?", game.ID).
		Update("rating", 8.5).Error)

	svc := NewRatingService(repository.NewRatingRepository(db), repository.NewUserRepository(db))

	rating, err := svc.RecomputeGameRating(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.5, rating)

	var stored model.Game
	require.NoError(t, db.First(&stored, "id = ?", game.ID).Error)
	assert.Equal(t, 8.5, stored.Rating)
}

func TestLeaderboardOrdersByScore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	ratingRepo := repository.NewRatingRepository(db)
	for i, username := range []string{"bronze", "gold", "silver"} {
		user := createTestUser(t, db, username)
		require.NoError(t, ratingRepo.SaveScore(ctx, user.ID, (i*7)%15)) // 0, 7, 14
	}

	svc := NewRatingService(ratingRepo, repository.NewUserRepository(db))

	entries, err := svc.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "silver", entries[0].Username)
	assert.Equal(t, 14, entries[0].Score)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "gold", entries[1].Username)
	assert.Equal(t, 2, entries[1].Position)
}
