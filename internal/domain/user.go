package domain

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultDigestTime is the local time a new user receives the daily agenda.
const DefaultDigestTime = "07:00"

var digestTimePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// User is a household member identified by a stable external id
// (the chat platform user id).
type User struct {
	ID                uuid.UUID
	ExternalID        int64
	Name              string
	PartnerExternalID *int64
	DigestTime        string
	CreatedAt         time.Time
}

// HasPartner reports whether the user is linked to a partner.
func (u *User) HasPartner() bool {
	return u.PartnerExternalID != nil && *u.PartnerExternalID != 0
}

// PartnerID returns the partner external id or 0 when unpaired.
func (u *User) PartnerID() int64 {
	if !u.HasPartner() {
		return 0
	}
	return *u.PartnerExternalID
}

// FamilyID derives the user's family partition key.
func (u *User) FamilyID() FamilyID {
	return ResolveFamilyID(u.ExternalID, u.PartnerID())
}

// ValidateDigestTime checks the HH:MM format with hour < 24 and minute < 60.
func ValidateDigestTime(s string) error {
	if !digestTimePattern.MatchString(s) {
		return NewValidationError("digest_time", "must match HH:MM")
	}
	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[3:])
	if hour > 23 || minute > 59 {
		return NewValidationError("digest_time", "out of range")
	}
	return nil
}
