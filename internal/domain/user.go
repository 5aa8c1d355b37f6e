package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Gender is a closed set of values persisted as a single character code.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// ParseGender maps a character code to a Gender value.
func ParseGender(code string) (Gender, error) {
	switch Gender(strings.ToUpper(strings.TrimSpace(code))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderOther:
		return GenderOther, nil
	default:
		return "", fmt.Errorf("invalid gender code %q", code)
	}
}

func (g Gender) String() string {
	return string(g)
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ParseGender(code)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// User represents one registered account of the system.
type User struct {
	ID           string
	Name         string
	Gender       *Gender
	BirthDate    *time.Time
	State        string
	City         string
	CEP          string
	Complement   string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
