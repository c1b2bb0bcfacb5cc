package dto

import (
	"encoding/json"
	"time"
)

type UpdateProfileRequest struct {
	Bio             *string  `json:"bio" form:"bio" binding:"omitempty,max=500"`
	FirstName       *string  `json:"first_name" form:"first_name" binding:"omitempty,max=30"`
	LastName        *string  `json:"last_name" form:"last_name" binding:"omitempty,max=30"`
	Age             *int     `json:"age" form:"age" binding:"omitempty,gte=0,lte=130"`
	Sex             *string  `json:"sex" form:"sex" binding:"omitempty,oneof=men women"`
	GamingPlatforms *string  `json:"gaming_platforms" form:"gaming_platforms" binding:"omitempty,max=100"`
	Link            *string  `json:"link" form:"link" binding:"omitempty,url"`
	FavoriteGenres  []string `json:"favorite_genres" form:"favorite_genres"` // genre slugs
}

type ProfileResponse struct {
	Username        string          `json:"username"`
	AvatarURL       *string         `json:"avatar_url"`
	Bio             string          `json:"bio"`
	FirstName       *string         `json:"first_name"`
	LastName        *string         `json:"last_name"`
	Age             *int            `json:"age"`
	Sex             string          `json:"sex"`
	GamingPlatforms string          `json:"gaming_platforms"`
	Link            *string         `json:"link"`
	FavoriteGenres  []GenreResponse `json:"favorite_genres"`
	Achievements    json.RawMessage `json:"achievements"`
	Score           int             `json:"score"`
	LastActivity    time.Time       `json:"last_activity"`
	DateJoined      time.Time       `json:"date_joined"`
}

type AddFriendRequest struct {
	Username string `json:"username" binding:"required"`
}

type FriendResponse struct {
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url"`
	AddedAt   time.Time `json:"added_at"`
}

type LeaderboardEntry struct {
	Position  int     `json:"position"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
	Score     int     `json:"score"`
}
