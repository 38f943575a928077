// Package entitlement provides the ledger aggregate that tracks, per household and
// assistance type, the programme ceiling and how much of it has been distributed.
package entitlement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/shared/money"
)

// Entitlement is the balance ledger row for one (household, assistance type) pair.
// remaining is always programmeTotal minus distributedTotal and never negative.
type Entitlement struct {
	id               uint
	householdID      uint
	assistanceTypeID uint
	programmeTotal   decimal.Decimal
	distributedTotal decimal.Decimal
	createdAt        time.Time
	updatedAt        time.Time
	version          int
}

// Balance is a point-in-time view of an entitlement.
type Balance struct {
	ProgrammeTotal   decimal.Decimal
	DistributedTotal decimal.Decimal
	Remaining        decimal.Decimal
}

// NewEntitlement creates a ledger row with nothing distributed yet
func NewEntitlement(householdID, assistanceTypeID uint, programmeTotal decimal.Decimal) (*Entitlement, error) {
	if householdID == 0 {
		return nil, ErrHouseholdIDRequired
	}
	if assistanceTypeID == 0 {
		return nil, ErrAssistanceTypeIDRequired
	}
	if programmeTotal.IsNegative() {
		return nil, fmt.Errorf("%w: programme total %s is negative", ErrInvalidAmount, programmeTotal)
	}
	if !money.Fits(programmeTotal) {
		return nil, fmt.Errorf("%w: programme total %s exceeds %d decimal places", ErrInvalidAmount, programmeTotal, money.Scale)
	}

	now := time.Now().UTC()
	return &Entitlement{
		householdID:      householdID,
		assistanceTypeID: assistanceTypeID,
		programmeTotal:   programmeTotal,
		distributedTotal: decimal.Zero,
		createdAt:        now,
		updatedAt:        now,
		version:          1,
	}, nil
}

// ReconstructEntitlement reconstructs an entitlement from persistence
func ReconstructEntitlement(
	id, householdID, assistanceTypeID uint,
	programmeTotal, distributedTotal decimal.Decimal,
	createdAt, updatedAt time.Time,
	version int,
) (*Entitlement, error) {
	if id == 0 {
		return nil, fmt.Errorf("entitlement ID cannot be zero")
	}
	if householdID == 0 {
		return nil, ErrHouseholdIDRequired
	}
	if assistanceTypeID == 0 {
		return nil, ErrAssistanceTypeIDRequired
	}
	if distributedTotal.IsNegative() || distributedTotal.GreaterThan(programmeTotal) {
		return nil, fmt.Errorf("entitlement %d is corrupt: distributed %s exceeds programme total %s",
			id, distributedTotal, programmeTotal)
	}

	return &Entitlement{
		id:               id,
		householdID:      householdID,
		assistanceTypeID: assistanceTypeID,
		programmeTotal:   programmeTotal,
		distributedTotal: distributedTotal,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		version:          version,
	}, nil
}

// ID returns the entitlement ID
func (e *Entitlement) ID() uint {
	return e.id
}

// HouseholdID returns the owning household
func (e *Entitlement) HouseholdID() uint {
	return e.householdID
}

// AssistanceTypeID returns the assistance type the balance is denominated in
func (e *Entitlement) AssistanceTypeID() uint {
	return e.assistanceTypeID
}

// ProgrammeTotal returns the ceiling for the whole programme
func (e *Entitlement) ProgrammeTotal() decimal.Decimal {
	return e.programmeTotal
}

// DistributedTotal returns the cumulative amount applied so far
func (e *Entitlement) DistributedTotal() decimal.Decimal {
	return e.distributedTotal
}

func (e *Entitlement) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entitlement) UpdatedAt() time.Time {
	return e.updatedAt
}

// Version returns the aggregate version for optimistic locking
func (e *Entitlement) Version() int {
	return e.version
}

// Remaining returns the amount still available for distribution
func (e *Entitlement) Remaining() decimal.Decimal {
	return e.programmeTotal.Sub(e.distributedTotal)
}

// Balance returns the current totals
func (e *Entitlement) Balance() Balance {
	return Balance{
		ProgrammeTotal:   e.programmeTotal,
		DistributedTotal: e.distributedTotal,
		Remaining:        e.Remaining(),
	}
}

// SetID sets the entitlement ID (only for persistence layer use)
func (e *Entitlement) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("entitlement ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("entitlement ID cannot be zero")
	}
	e.id = id
	return nil
}

// Apply draws amount from the balance and returns the new remaining amount.
// The aggregate is left untouched when the draw is rejected.
func (e *Entitlement) Apply(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: distribution amount must be positive, got %s", ErrInvalidAmount, amount)
	}
	if !money.Fits(amount) {
		return decimal.Zero, fmt.Errorf("%w: distribution amount %s exceeds %d decimal places", ErrInvalidAmount, amount, money.Scale)
	}
	remaining := e.Remaining()
	if amount.GreaterThan(remaining) {
		return decimal.Zero, fmt.Errorf("%w: requested %s, remaining %s", ErrInsufficientBalance, amount, remaining)
	}

	e.distributedTotal = e.distributedTotal.Add(amount)
	e.updatedAt = time.Now().UTC()
	e.version++

	return e.Remaining(), nil
}

// ZeroOut lowers the programme ceiling to what has been distributed so nothing remains.
// It is the only way to close an entitlement; rows are never deleted.
func (e *Entitlement) ZeroOut() bool {
	if e.Remaining().IsZero() {
		return false
	}
	e.programmeTotal = e.distributedTotal
	e.updatedAt = time.Now().UTC()
	e.version++
	return true
}
