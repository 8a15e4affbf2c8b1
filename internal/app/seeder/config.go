package seeder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Household is the YAML file describing the members of one or more
// families and who is paired with whom.
//
//	users:
//	  - external_id: 111
//	    name: Anna
//	    digest_time: "07:30"
//	  - external_id: 222
//	    name: Boris
//	partners:
//	  - [111, 222]
type Household struct {
	Users    []HouseholdUser `yaml:"users"`
	Partners [][2]int64      `yaml:"partners"`
}

// HouseholdUser is one member entry. An empty DigestTime keeps the default.
type HouseholdUser struct {
	ExternalID int64  `yaml:"external_id"`
	Name       string `yaml:"name"`
	DigestTime string `yaml:"digest_time"`
}

// LoadHousehold reads a household file from path.
func LoadHousehold(path string) (*Household, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seeder: read %s: %w", path, err)
	}
	h, err := ParseHousehold(data)
	if err != nil {
		return nil, fmt.Errorf("seeder: %s: %w", path, err)
	}
	return h, nil
}

// ParseHousehold decodes and checks a household document. Unknown keys are
// rejected so typos do not silently drop data.
func ParseHousehold(data []byte) (*Household, error) {
	var h Household
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&h); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	return &h, nil
}

func (h *Household) validate() error {
	seen := make(map[int64]bool, len(h.Users))
	for i, u := range h.Users {
		if u.ExternalID <= 0 {
			return fmt.Errorf("users[%d]: external_id must be positive", i)
		}
		if seen[u.ExternalID] {
			return fmt.Errorf("users[%d]: duplicate external_id %d", i, u.ExternalID)
		}
		seen[u.ExternalID] = true
	}

	paired := make(map[int64]bool)
	for i, p := range h.Partners {
		if p[0] == p[1] {
			return fmt.Errorf("partners[%d]: a user cannot partner with themselves", i)
		}
		for _, id := range p {
			if !seen[id] {
				return fmt.Errorf("partners[%d]: unknown user %d", i, id)
			}
			if paired[id] {
				return fmt.Errorf("partners[%d]: user %d is paired twice", i, id)
			}
			paired[id] = true
		}
	}
	return nil
}
