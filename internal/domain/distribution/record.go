package distribution

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/shared/money"
)

// RecordKey is the natural key of a record. Planning is idempotent on it.
type RecordKey struct {
	DistributionID   uint
	HouseholdID      uint
	AssistanceTypeID uint
}

// Outcome is what field staff report for a record.
type Outcome struct {
	Status       RecordStatus
	ActualAmount *decimal.Decimal
	Notes        string
}

// Record is one household's line item within a distribution.
// actualAmount is nil exactly while the record is pending.
type Record struct {
	id               uint
	distributionID   uint
	householdID      uint
	entitlementID    uint
	assistanceTypeID uint
	plannedAmount    decimal.Decimal
	actualAmount     *decimal.Decimal
	status           RecordStatus
	distributedAt    *time.Time
	notes            string
	confirmedBy      string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewRecord creates a pending record for a planned item
func NewRecord(key RecordKey, entitlementID uint, plannedAmount decimal.Decimal) (*Record, error) {
	if key.DistributionID == 0 || key.HouseholdID == 0 || key.AssistanceTypeID == 0 {
		return nil, fmt.Errorf("distribution, household and assistance type are required")
	}
	if entitlementID == 0 {
		return nil, ErrNoEntitlement
	}
	if !plannedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: planned amount must be positive, got %s", ErrInvalidAmount, plannedAmount)
	}
	if !money.Fits(plannedAmount) {
		return nil, fmt.Errorf("%w: planned amount %s exceeds %d decimal places", ErrInvalidAmount, plannedAmount, money.Scale)
	}

	now := time.Now().UTC()
	return &Record{
		distributionID:   key.DistributionID,
		householdID:      key.HouseholdID,
		entitlementID:    entitlementID,
		assistanceTypeID: key.AssistanceTypeID,
		plannedAmount:    plannedAmount,
		status:           RecordStatusPending,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructRecord reconstructs a record from persistence
func ReconstructRecord(
	id, distributionID, householdID, entitlementID, assistanceTypeID uint,
	plannedAmount decimal.Decimal,
	actualAmount *decimal.Decimal,
	status RecordStatus,
	distributedAt *time.Time,
	notes, confirmedBy string,
	createdAt, updatedAt time.Time,
) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("distribution record ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid record status: %s", status)
	}
	return &Record{
		id:               id,
		distributionID:   distributionID,
		householdID:      householdID,
		entitlementID:    entitlementID,
		assistanceTypeID: assistanceTypeID,
		plannedAmount:    plannedAmount,
		actualAmount:     actualAmount,
		status:           status,
		distributedAt:    distributedAt,
		notes:            notes,
		confirmedBy:      confirmedBy,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (r *Record) ID() uint {
	return r.id
}

func (r *Record) DistributionID() uint {
	return r.distributionID
}

func (r *Record) HouseholdID() uint {
	return r.householdID
}

func (r *Record) EntitlementID() uint {
	return r.entitlementID
}

func (r *Record) AssistanceTypeID() uint {
	return r.assistanceTypeID
}

func (r *Record) PlannedAmount() decimal.Decimal {
	return r.plannedAmount
}

// ActualAmount is nil while the record is pending
func (r *Record) ActualAmount() *decimal.Decimal {
	return r.actualAmount
}

func (r *Record) Status() RecordStatus {
	return r.status
}

func (r *Record) DistributedAt() *time.Time {
	return r.distributedAt
}

func (r *Record) Notes() string {
	return r.notes
}

func (r *Record) ConfirmedBy() string {
	return r.confirmedBy
}

func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Record) UpdatedAt() time.Time {
	return r.updatedAt
}

// Key returns the natural key of the record
func (r *Record) Key() RecordKey {
	return RecordKey{
		DistributionID:   r.distributionID,
		HouseholdID:      r.householdID,
		AssistanceTypeID: r.assistanceTypeID,
	}
}

// SetID sets the record ID (only for persistence layer use)
func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("distribution record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("distribution record ID cannot be zero")
	}
	r.id = id
	return nil
}

// IsPending reports whether the record still awaits a field outcome.
func (r *Record) IsPending() bool {
	return r.status == RecordStatusPending
}

// ActualOrZero returns the actual amount, counting a missing one as zero.
func (r *Record) ActualOrZero() decimal.Decimal {
	if r.actualAmount == nil {
		return decimal.Zero
	}
	return *r.actualAmount
}

// ResolveOutcome checks o against the planned amount and returns the actual
// amount that would be stored. Missed outcomes resolve to zero.
func (r *Record) ResolveOutcome(o Outcome) (decimal.Decimal, error) {
	switch o.Status {
	case RecordStatusDistributed:
		if o.ActualAmount == nil || !o.ActualAmount.Equal(r.plannedAmount) {
			return decimal.Zero, fmt.Errorf("%w: distributed requires actual amount equal to planned %s",
				ErrInvalidOutcome, r.plannedAmount)
		}
		return r.plannedAmount, nil
	case RecordStatusPartial:
		if o.ActualAmount == nil || !o.ActualAmount.IsPositive() || !o.ActualAmount.LessThan(r.plannedAmount) {
			return decimal.Zero, fmt.Errorf("%w: partial requires 0 < actual amount < planned %s",
				ErrInvalidOutcome, r.plannedAmount)
		}
		if !money.Fits(*o.ActualAmount) {
			return decimal.Zero, fmt.Errorf("%w: actual amount %s exceeds %d decimal places",
				ErrInvalidOutcome, o.ActualAmount, money.Scale)
		}
		return *o.ActualAmount, nil
	case RecordStatusMissed:
		if o.ActualAmount != nil && !o.ActualAmount.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: missed requires actual amount 0 or empty", ErrInvalidOutcome)
		}
		return decimal.Zero, nil
	case RecordStatusPending:
		return decimal.Zero, fmt.Errorf("%w: a record cannot be confirmed as pending", ErrInvalidOutcome)
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown status %q", ErrInvalidOutcome, o.Status)
	}
}

// Confirm finalizes a pending record with the given outcome.
func (r *Record) Confirm(o Outcome, confirmedBy string, at time.Time) error {
	if !r.IsPending() {
		return fmt.Errorf("%w: record %d is %s", ErrAlreadyFinalized, r.id, r.status)
	}
	actual, err := r.ResolveOutcome(o)
	if err != nil {
		return err
	}

	r.status = o.Status
	r.actualAmount = &actual
	r.notes = o.Notes
	r.confirmedBy = confirmedBy
	if o.Status.MovesLedger() {
		r.distributedAt = &at
	}
	r.updatedAt = at
	return nil
}
