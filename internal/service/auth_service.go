package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"gamehub/backend/pkg/mailer"
	"gamehub/backend/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type resetClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

const resetPurpose = "password_reset"

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterRequest, avatar *ImageUpload) (*dto.AuthResponse, error)
	// CreateSuperuser requires both flags to be true, mirroring the explicit
	// staff/superuser contract for privileged accounts.
	CreateSuperuser(ctx context.Context, input dto.RegisterRequest, isStaff, isSuperuser bool) (*model.User, error)
	Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error)
	ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, input dto.ConfirmResetRequest) error
}

type authService struct {
	repo         repository.UserRepository
	imageStorage storage.ImageStorage
	mail         mailer.Mailer
	secret       string
	tokenTTL     time.Duration
	resetTTL     time.Duration
}

func NewAuthService(repo repository.UserRepository, imageStorage storage.ImageStorage, mail mailer.Mailer, secret string, tokenTTL, resetTTL time.Duration) AuthService {
	return &authService{
		repo:         repo,
		imageStorage: imageStorage,
		mail:         mail,
		secret:       secret,
		tokenTTL:     tokenTTL,
		resetTTL:     resetTTL,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterRequest, avatar *ImageUpload) (*dto.AuthResponse, error) {
	if err := s.ensureUserUnique(ctx, input.Email, input.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Upload avatar (if any) only after the uniqueness checks pass.
	var avatarURL *string
	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, storage.FolderAvatars, avatar.FileName)
		if err != nil {
			return nil, err
		}
		avatarURL = &url
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		AvatarURL:    avatarURL,
		Bio:          input.Bio,
		IsActive:     true,
	}

	profile := &model.Profile{
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	if err := s.repo.Create(ctx, user, profile); err != nil {
		// A pre-check-then-insert race can still trip the unique constraint;
		// translate it to the same validation message.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("a user with this email or username is already registered")
		}
		return nil, err
	}

	// Welcome email is fire and forget: failure is logged, never surfaced, not
	// retried. The account is created and usable either way.
	go func(email, username string) {
		body := fmt.Sprintf("Hi %s! Thanks for registering at GameHub.", username)
		if err := s.mail.Send(email, "Welcome to GameHub!", body); err != nil {
			log.Printf("failed to send welcome email to %s: %v", email, err)
		}
	}(user.Email, user.Username)

	created, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(created)
}

func (s *authService) CreateSuperuser(ctx context.Context, input dto.RegisterRequest, isStaff, isSuperuser bool) (*model.User, error) {
	if !isStaff {
		return nil, apperror.Validation("superuser must have is_staff=true")
	}
	if !isSuperuser {
		return nil, apperror.Validation("superuser must have is_superuser=true")
	}

	if err := s.ensureUserUnique(ctx, input.Email, input.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}

	if err := s.repo.Create(ctx, user, &model.Profile{}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("a user with this email or username is already registered")
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.New(401, "account is deactivated", apperror.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return apperror.Validation("old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hashed))
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Don't reveal whether the address is registered.
			return nil
		}
		return err
	}

	now := time.Now()
	claims := resetClaims{
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return fmt.Errorf("failed to sign reset token: %w", err)
	}

	go func(email, token string) {
		body := fmt.Sprintf("Use this token to reset your GameHub password: %s", token)
		if err := s.mail.Send(email, "GameHub password reset", body); err != nil {
			log.Printf("failed to send reset email to %s: %v", email, err)
		}
	}(user.Email, token)

	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, input dto.ConfirmResetRequest) error {
	token, err := jwt.ParseWithClaims(input.Token, &resetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return apperror.Validation("invalid or expired reset token")
	}

	claims, ok := token.Claims.(*resetClaims)
	if !ok || claims.Purpose != resetPurpose {
		return apperror.Validation("invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, claims.Subject, string(hashed))
}

func (s *authService) ensureUserUnique(ctx context.Context, email, username string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return apperror.Validation("a user with this email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return apperror.Validation("this username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User: &dto.UserResponse{
			ID:         user.ID.String(),
			Username:   user.Username,
			Email:      user.Email,
			IsStaff:    user.IsStaff,
			AvatarURL:  user.AvatarURL,
			Bio:        user.Bio,
			DateJoined: user.DateJoined,
		},
	}, nil
}
