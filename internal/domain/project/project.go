// Package project models the humanitarian projects that own households,
// assistance types and distributions, and their draft to closed lifecycle.
package project

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	maxNameLength        = 200
	maxFinanceCodeLength = 50
)

// Details are the editable attributes of a project.
type Details struct {
	Name        string
	Description string
	CountryCode string
	StartDate   time.Time
	EndDate     *time.Time
	FinanceCode string
}

// Project groups the caseload and budget of one response in one country.
type Project struct {
	id          uint
	name        string
	description string
	country     language.Region
	startDate   time.Time
	endDate     *time.Time
	financeCode string
	status      Status
	createdBy   string
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewProject validates details and creates a project in the draft state
func NewProject(d Details, createdBy string) (*Project, error) {
	p := &Project{status: StatusDraft, createdBy: createdBy, version: 1}
	if err := p.apply(d); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.createdAt = now
	p.updatedAt = now
	return p, nil
}

// ReconstructProject reconstructs a project from persistence
func ReconstructProject(
	id uint,
	name, description, countryCode string,
	startDate time.Time,
	endDate *time.Time,
	financeCode string,
	status Status,
	createdBy string,
	createdAt, updatedAt time.Time,
	version int,
) (*Project, error) {
	if id == 0 {
		return nil, fmt.Errorf("project ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid project status: %s", status)
	}
	country, err := ParseCountry(countryCode)
	if err != nil {
		return nil, err
	}
	return &Project{
		id:          id,
		name:        name,
		description: description,
		country:     country,
		startDate:   startDate,
		endDate:     endDate,
		financeCode: financeCode,
		status:      status,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}, nil
}

// ParseCountry accepts an ISO 3166-1 alpha-2 country code in any case.
func ParseCountry(code string) (language.Region, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return language.Region{}, fmt.Errorf("%w: country %q is not an ISO 3166-1 alpha-2 code", ErrInvalidProject, code)
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return language.Region{}, fmt.Errorf("%w: country %q is not an ISO 3166-1 alpha-2 code", ErrInvalidProject, code)
	}
	return region, nil
}

func (p *Project) ID() uint {
	return p.id
}

func (p *Project) Name() string {
	return p.name
}

func (p *Project) Description() string {
	return p.description
}

// CountryCode returns the ISO 3166-1 alpha-2 code
func (p *Project) CountryCode() string {
	return p.country.String()
}

func (p *Project) StartDate() time.Time {
	return p.startDate
}

func (p *Project) EndDate() *time.Time {
	return p.endDate
}

func (p *Project) FinanceCode() string {
	return p.financeCode
}

func (p *Project) Status() Status {
	return p.status
}

func (p *Project) CreatedBy() string {
	return p.createdBy
}

func (p *Project) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Project) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Project) Version() int {
	return p.version
}

// SetID sets the project ID (only for persistence layer use)
func (p *Project) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("project ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("project ID cannot be zero")
	}
	p.id = id
	return nil
}

// AcceptsWrites returns ErrProjectClosed once the project is closed.
// Draft projects accept writes so that the caseload can be set up before activation.
func (p *Project) AcceptsWrites() error {
	if p.status == StatusClosed {
		return fmt.Errorf("%w: project %d", ErrProjectClosed, p.id)
	}
	return nil
}

// UpdateDetails replaces the editable attributes of an open project
func (p *Project) UpdateDetails(d Details) error {
	if err := p.AcceptsWrites(); err != nil {
		return err
	}
	if err := p.apply(d); err != nil {
		return err
	}
	p.touch()
	return nil
}

func (p *Project) Activate() error {
	return p.transitionTo(StatusActive)
}

// Close is terminal. Callers check that no distribution is still open.
func (p *Project) Close() error {
	return p.transitionTo(StatusClosed)
}

func (p *Project) apply(d Details) error {
	name := strings.TrimSpace(d.Name)
	financeCode := strings.TrimSpace(d.FinanceCode)
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	case len(name) > maxNameLength:
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidProject, maxNameLength)
	case len(financeCode) > maxFinanceCodeLength:
		return fmt.Errorf("%w: finance code exceeds %d characters", ErrInvalidProject, maxFinanceCodeLength)
	case d.StartDate.IsZero():
		return fmt.Errorf("%w: start date is required", ErrInvalidProject)
	case d.EndDate != nil && d.EndDate.Before(d.StartDate):
		return fmt.Errorf("%w: end date is before start date", ErrInvalidProject)
	}

	country, err := ParseCountry(d.CountryCode)
	if err != nil {
		return err
	}

	p.name = name
	p.description = strings.TrimSpace(d.Description)
	p.country = country
	p.startDate = d.StartDate
	p.endDate = d.EndDate
	p.financeCode = financeCode
	return nil
}

func (p *Project) transitionTo(next Status) error {
	if !p.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidState, p.status, next)
	}
	p.status = next
	p.touch()
	return nil
}

func (p *Project) touch() {
	p.updatedAt = time.Now().UTC()
	p.version++
}
