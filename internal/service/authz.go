package service

import (
	"context"

	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"github.com/google/uuid"
)

// authorizeAuthorOrStaff permits writes by the resource author and by staff
// members, and rejects everyone else.
func authorizeAuthorOrStaff(ctx context.Context, userRepo repository.UserRepository, requesterID string, authorID uuid.UUID) error {
	if requesterID == authorID.String() {
		return nil
	}
	requester, err := userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return err
	}
	if !requester.IsStaff {
		return apperror.ErrForbidden
	}
	return nil
}
