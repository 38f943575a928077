package household

import (
	"fmt"
	"strings"
	"time"
)

// Beneficiary is a member of a household.
type Beneficiary struct {
	ID          uint
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      Gender
	NationalID  string
	Phone       string
	Email       string
	IsHead      bool
	IsProxy     bool
}

// Validate checks the member's own fields
func (b *Beneficiary) Validate() error {
	if strings.TrimSpace(b.FirstName) == "" || strings.TrimSpace(b.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidMember)
	}
	if !b.Gender.IsValid() {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidMember, b.Gender)
	}
	if b.DateOfBirth != nil && b.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("%w: date of birth is in the future", ErrInvalidMember)
	}
	return nil
}

// FullName joins first and last name
func (b *Beneficiary) FullName() string {
	return b.FirstName + " " + b.LastName
}
