// Package household models registered beneficiary units and their lifecycle
// from registration through enrolment to activation or exit.
package household

import (
	"fmt"
	"strings"
	"time"
)

// Household is a beneficiary unit owned by exactly one project.
type Household struct {
	id                 uint
	projectID          uint
	registrationNumber string
	locationID         *uint
	address            string
	status             Status
	consentGiven       bool
	consentDate        *time.Time
	members            []*Beneficiary
	createdAt          time.Time
	updatedAt          time.Time
	version            int
}

// NewHousehold registers a household with its members
func NewHousehold(projectID uint, registrationNumber string, locationID *uint, address string, members []*Beneficiary) (*Household, error) {
	registrationNumber = strings.TrimSpace(registrationNumber)
	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if registrationNumber == "" {
		return nil, ErrRegistrationNumberRequired
	}

	now := time.Now().UTC()
	h := &Household{
		projectID:          projectID,
		registrationNumber: registrationNumber,
		locationID:         locationID,
		address:            address,
		status:             StatusRegistered,
		createdAt:          now,
		updatedAt:          now,
		version:            1,
	}
	for _, m := range members {
		if err := h.AddMember(m); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// ReconstructHousehold reconstructs a household from persistence
func ReconstructHousehold(
	id, projectID uint,
	registrationNumber string,
	locationID *uint,
	address string,
	status Status,
	consentGiven bool,
	consentDate *time.Time,
	members []*Beneficiary,
	createdAt, updatedAt time.Time,
	version int,
) (*Household, error) {
	if id == 0 {
		return nil, fmt.Errorf("household ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid household status: %s", status)
	}
	return &Household{
		id:                 id,
		projectID:          projectID,
		registrationNumber: registrationNumber,
		locationID:         locationID,
		address:            address,
		status:             status,
		consentGiven:       consentGiven,
		consentDate:        consentDate,
		members:            members,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		version:            version,
	}, nil
}

func (h *Household) ID() uint {
	return h.id
}

func (h *Household) ProjectID() uint {
	return h.projectID
}

func (h *Household) RegistrationNumber() string {
	return h.registrationNumber
}

func (h *Household) LocationID() *uint {
	return h.locationID
}

func (h *Household) Address() string {
	return h.address
}

func (h *Household) Status() Status {
	return h.status
}

func (h *Household) ConsentGiven() bool {
	return h.consentGiven
}

func (h *Household) ConsentDate() *time.Time {
	return h.consentDate
}

// Members returns the household members, head first when one is set
func (h *Household) Members() []*Beneficiary {
	return h.members
}

func (h *Household) CreatedAt() time.Time {
	return h.createdAt
}

func (h *Household) UpdatedAt() time.Time {
	return h.updatedAt
}

func (h *Household) Version() int {
	return h.version
}

// SetID sets the household ID (only for persistence layer use)
func (h *Household) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("household ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("household ID cannot be zero")
	}
	h.id = id
	return nil
}

// AddMember validates and appends a member. Only one member may be head.
func (h *Household) AddMember(b *Beneficiary) error {
	if b == nil {
		return fmt.Errorf("%w: member is nil", ErrInvalidMember)
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if b.IsHead {
		for _, m := range h.members {
			if m.IsHead {
				return ErrMultipleHeads
			}
		}
		h.members = append([]*Beneficiary{b}, h.members...)
		return nil
	}
	h.members = append(h.members, b)
	return nil
}

// GiveConsent records data-sharing consent. Giving it again keeps the first date.
func (h *Household) GiveConsent(at time.Time) error {
	if h.status == StatusInactive {
		return fmt.Errorf("%w: household is inactive", ErrInvalidState)
	}
	if h.consentGiven {
		return nil
	}
	h.consentGiven = true
	h.consentDate = &at
	h.touch()
	return nil
}

// Enroll moves a registered household into the programme.
func (h *Household) Enroll() error {
	return h.transitionTo(StatusEnrolled)
}

// Activate requires recorded consent.
func (h *Household) Activate() error {
	if !h.consentGiven {
		return fmt.Errorf("%w: %w", ErrInvalidState, ErrConsentRequired)
	}
	return h.transitionTo(StatusActive)
}

// Deactivate exits the household from the programme. Inactive is terminal.
func (h *Household) Deactivate() error {
	return h.transitionTo(StatusInactive)
}

// CanHoldEntitlement reports whether new entitlements may be created for the household.
func (h *Household) CanHoldEntitlement() bool {
	return h.status != StatusInactive
}

// EnrollIfRegistered advances a registered household and reports whether it changed.
func (h *Household) EnrollIfRegistered() bool {
	if h.status != StatusRegistered {
		return false
	}
	_ = h.transitionTo(StatusEnrolled)
	return true
}

func (h *Household) transitionTo(next Status) error {
	if !h.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidState, h.status, next)
	}
	h.status = next
	h.touch()
	return nil
}

func (h *Household) touch() {
	h.updatedAt = time.Now().UTC()
	h.version++
}
