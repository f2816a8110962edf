package auth

import (
	"github.com/google/uuid"
	"github.com/yigit/attendance/internal/pkg/apperrors"
)

// Messages returned when a lecturer acts on another account
const (
	NotAuthorizedUpdateMessage = "Not authorized to update this user"
	NotAuthorizedDeleteMessage = "Not authorized to delete this user"
)

// AuthorizationService holds the ownership rules for lecturer accounts.
// Course ownership is enforced by the course repository's WHERE clauses.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// IsSelf reports whether the principal is the target account
func (s *AuthorizationService) IsSelf(principalID, targetID uuid.UUID) bool {
	return principalID != uuid.Nil && principalID == targetID
}

// ValidateProfileUpdate returns an unauthorized error unless the principal edits its own profile
func (s *AuthorizationService) ValidateProfileUpdate(principalID, targetID uuid.UUID) error {
	if !s.IsSelf(principalID, targetID) {
		return apperrors.NewUnauthorizedError(NotAuthorizedUpdateMessage)
	}
	return nil
}

// ValidateAccountDeletion returns an unauthorized error unless the principal deletes its own account
func (s *AuthorizationService) ValidateAccountDeletion(principalID, targetID uuid.UUID) error {
	if !s.IsSelf(principalID, targetID) {
		return apperrors.NewUnauthorizedError(NotAuthorizedDeleteMessage)
	}
	return nil
}
