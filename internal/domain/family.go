package domain

import (
	"regexp"
	"strconv"
)

// FamilyID is the symmetric partition key grouping a paired household
// (or a single unpaired user). It is derived on every request and never
// persisted as user state.
type FamilyID string

func (f FamilyID) String() string { return string(f) }

var familyIDPattern = regexp.MustCompile(`^family_\d+(_\d+)?$`)

// ResolveFamilyID computes the family key for a user and an optional partner.
// partner == 0 means no partner. The result does not depend on argument order.
func ResolveFamilyID(userID, partnerID int64) FamilyID {
	if partnerID == 0 {
		return FamilyID("family_" + strconv.FormatInt(userID, 10))
	}
	lo, hi := min(userID, partnerID), max(userID, partnerID)
	return FamilyID("family_" + strconv.FormatInt(lo, 10) + "_" + strconv.FormatInt(hi, 10))
}

// ParseFamilyID validates a raw family id received from a caller.
func ParseFamilyID(raw string) (FamilyID, error) {
	if raw == "" {
		return "", NewValidationError("family_id", "required")
	}
	if !familyIDPattern.MatchString(raw) {
		return "", NewValidationError("family_id", "must look like family_<id> or family_<id>_<id>")
	}
	return FamilyID(raw), nil
}
