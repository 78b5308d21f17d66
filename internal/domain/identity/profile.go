package identity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// UserProfile holds optional profile information attached to a user
// It is created automatically when the user registers
type UserProfile struct {
	shared.BaseEntity
	UserID      uuid.UUID
	Bio         string
	Location    string
	BirthDate   *time.Time
	PhoneNumber string
	Website     string
	SocialLinks json.RawMessage
	AvatarURL   string
}

// NewUserProfile creates an empty profile for the given user
func NewUserProfile(userID uuid.UUID) *UserProfile {
	return &UserProfile{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}
}

// Update applies profile changes after validating field lengths
func (p *UserProfile) Update(bio, location, phoneNumber, website, avatarURL string, birthDate *time.Time, socialLinks json.RawMessage) error {
	if len(bio) > 1000 {
		return shared.NewDomainError("INVALID_PROFILE", "Bio cannot exceed 1000 characters")
	}
	if len(location) > 200 {
		return shared.NewDomainError("INVALID_PROFILE", "Location cannot exceed 200 characters")
	}
	if len(phoneNumber) > 20 {
		return shared.NewDomainError("INVALID_PROFILE", "Phone number cannot exceed 20 characters")
	}
	if len(website) > 200 {
		return shared.NewDomainError("INVALID_PROFILE", "Website cannot exceed 200 characters")
	}
	if len(avatarURL) > 500 {
		return shared.NewDomainError("INVALID_PROFILE", "Avatar URL cannot exceed 500 characters")
	}
	if len(socialLinks) > 0 && !json.Valid(socialLinks) {
		return shared.NewDomainError("INVALID_PROFILE", "Social links must be valid JSON")
	}

	p.Bio = strings.TrimSpace(bio)
	p.Location = strings.TrimSpace(location)
	p.PhoneNumber = strings.TrimSpace(phoneNumber)
	p.Website = strings.TrimSpace(website)
	p.AvatarURL = strings.TrimSpace(avatarURL)
	p.BirthDate = birthDate
	p.SocialLinks = socialLinks
	p.UpdatedAt = time.Now()

	return nil
}
