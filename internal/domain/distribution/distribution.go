// Package distribution models distribution events and the per-household records
// that are planned against them and later confirmed in the field.
package distribution

import (
	"fmt"
	"strings"
	"time"
)

// Distribution is a planned assistance event for one project.
type Distribution struct {
	id               uint
	projectID        uint
	name             string
	distributionDate time.Time
	locationID       *uint
	status           Status
	createdBy        string
	createdAt        time.Time
	updatedAt        time.Time
	version          int
}

// NewDistribution creates a distribution in the planned state
func NewDistribution(projectID uint, name string, date time.Time, locationID *uint, createdBy string) (*Distribution, error) {
	name = strings.TrimSpace(name)
	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if date.IsZero() {
		return nil, fmt.Errorf("distribution date is required")
	}

	now := time.Now().UTC()
	return &Distribution{
		projectID:        projectID,
		name:             name,
		distributionDate: date,
		locationID:       locationID,
		status:           StatusPlanned,
		createdBy:        createdBy,
		createdAt:        now,
		updatedAt:        now,
		version:          1,
	}, nil
}

// ReconstructDistribution reconstructs a distribution from persistence
func ReconstructDistribution(
	id, projectID uint,
	name string,
	date time.Time,
	locationID *uint,
	status Status,
	createdBy string,
	createdAt, updatedAt time.Time,
	version int,
) (*Distribution, error) {
	if id == 0 {
		return nil, fmt.Errorf("distribution ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid distribution status: %s", status)
	}
	return &Distribution{
		id:               id,
		projectID:        projectID,
		name:             name,
		distributionDate: date,
		locationID:       locationID,
		status:           status,
		createdBy:        createdBy,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		version:          version,
	}, nil
}

func (d *Distribution) ID() uint {
	return d.id
}

func (d *Distribution) ProjectID() uint {
	return d.projectID
}

func (d *Distribution) Name() string {
	return d.name
}

func (d *Distribution) DistributionDate() time.Time {
	return d.distributionDate
}

func (d *Distribution) LocationID() *uint {
	return d.locationID
}

func (d *Distribution) Status() Status {
	return d.status
}

func (d *Distribution) CreatedBy() string {
	return d.createdBy
}

func (d *Distribution) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Distribution) UpdatedAt() time.Time {
	return d.updatedAt
}

func (d *Distribution) Version() int {
	return d.version
}

// SetID sets the distribution ID (only for persistence layer use)
func (d *Distribution) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("distribution ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("distribution ID cannot be zero")
	}
	d.id = id
	return nil
}

// IsOpen reports whether records can still be planned or confirmed.
func (d *Distribution) IsOpen() bool {
	return !d.status.IsTerminal()
}

// Start moves a planned distribution into the field.
func (d *Distribution) Start() error {
	return d.transitionTo(StatusInProgress)
}

// Complete closes an in-progress distribution. Pending records stay pending.
func (d *Distribution) Complete() error {
	return d.transitionTo(StatusCompleted)
}

// Cancel closes a planned or in-progress distribution.
func (d *Distribution) Cancel() error {
	return d.transitionTo(StatusCancelled)
}

func (d *Distribution) transitionTo(next Status) error {
	if !d.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidState, d.status, next)
	}
	d.status = next
	d.updatedAt = time.Now().UTC()
	d.version++
	return nil
}
