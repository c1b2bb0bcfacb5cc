package service

import (
	"context"
	"testing"
	"time"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestProfileService(db *gorm.DB) ProfileService {
	return NewProfileService(
		repository.NewUserRepository(db),
		repository.NewFriendRepository(db),
		repository.NewGenreRepository(db),
		nil,
		nil,
		time.Minute,
	)
}

func TestUpdateProfileMergesFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestProfileService(db)

	user := createTestUser(t, db, "editor")

	first := "Sam"
	bio := "speedrunner"
	res, err := svc.UpdateProfile(ctx, user.ID.String(), dto.UpdateProfileRequest{
		FirstName: &first,
		Bio:       &bio,
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, res.FirstName)
	assert.Equal(t, "Sam", *res.FirstName)
	assert.Equal(t, "speedrunner", res.Bio)

	// A second partial update leaves untouched fields alone.
	age := 27
	res, err = svc.UpdateProfile(ctx, user.ID.String(), dto.UpdateProfileRequest{Age: &age}, nil)
	require.NoError(t, err)
	require.NotNil(t, res.FirstName)
	assert.Equal(t, "Sam", *res.FirstName)
	require.NotNil(t, res.Age)
	assert.Equal(t, 27, *res.Age)
}

func TestUpdateProfileReplacesFavoriteGenres(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestProfileService(db)

	user := createTestUser(t, db, "collector")
	for _, name := range []string{"Action", "Horror", "Indie"} {
		require.NoError(t, db.Create(&model.Genre{Name: name, Slug: Slugify(name)}).Error)
	}

	res, err := svc.UpdateProfile(ctx, user.ID.String(), dto.UpdateProfileRequest{
		FavoriteGenres: []string{"action", "horror"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, res.FavoriteGenres, 2)

	res, err = svc.UpdateProfile(ctx, user.ID.String(), dto.UpdateProfileRequest{
		FavoriteGenres: []string{"indie"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, res.FavoriteGenres, 1)
	assert.Equal(t, "indie", res.FavoriteGenres[0].Slug)
}

func TestGetProfileByUsernameIncludesScore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestProfileService(db)

	user := createTestUser(t, db, "visible")
	require.NoError(t, repository.NewRatingRepository(db).SaveScore(ctx, user.ID, 42))

	res, err := svc.GetProfileByUsername(ctx, "visible")
	require.NoError(t, err)
	assert.Equal(t, 42, res.Score)

	_, err = svc.GetProfileByUsername(ctx, "nobody")
	assert.Error(t, err)
}

func TestAddFriendRules(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestProfileService(db)

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	require.NoError(t, svc.AddFriend(ctx, alice.ID.String(), "bob"))

	// Self-friendship is rejected, unknown users are a miss.
	assert.Error(t, svc.AddFriend(ctx, alice.ID.String(), "alice"))
	assert.Error(t, svc.AddFriend(ctx, alice.ID.String(), "ghost"))

	// The edge is directed: bob has no friends yet.
	friends, err := svc.ListFriends(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, friends)

	friends, err = svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Username)

	// Adding the same friend twice keeps both edges.
	require.NoError(t, svc.AddFriend(ctx, alice.ID.String(), "bob"))
	friends, err = svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, friends, 2)
}
