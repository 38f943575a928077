// Package assistance holds the benefit definitions that entitlements are denominated in.
// Assistance types are append-only reference data.
package assistance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/reliefops/cva/internal/shared/money"
)

// Kind classifies the benefit.
type Kind string

const (
	KindCash     Kind = "cash"
	KindVoucher  Kind = "voucher"
	KindGoods    Kind = "goods"
	KindServices Kind = "services"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindCash, KindVoucher, KindGoods, KindServices:
		return true
	default:
		return false
	}
}

var (
	ErrAssistanceTypeNotFound = errors.New("assistance type not found")
	ErrInvalidAssistanceType  = errors.New("invalid assistance type")
	ErrDuplicateName          = errors.New("assistance type name already exists in project")
)

// AssistanceType defines a benefit with a unit and unit value in a currency.
type AssistanceType struct {
	id        uint
	projectID uint
	name      string
	kind      Kind
	unit      string
	unitValue decimal.Decimal
	currency  currency.Unit
	createdAt time.Time
}

// NewAssistanceType validates and creates a benefit definition
func NewAssistanceType(projectID uint, name string, kind Kind, unit string, unitValue decimal.Decimal, currencyCode string) (*AssistanceType, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	switch {
	case projectID == 0:
		return nil, fmt.Errorf("%w: project ID is required", ErrInvalidAssistanceType)
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidAssistanceType)
	case !kind.IsValid():
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidAssistanceType, kind)
	case unit == "":
		return nil, fmt.Errorf("%w: unit is required", ErrInvalidAssistanceType)
	case !unitValue.IsPositive():
		return nil, fmt.Errorf("%w: unit value must be positive", ErrInvalidAssistanceType)
	case !money.Fits(unitValue):
		return nil, fmt.Errorf("%w: unit value %s exceeds %d decimal places", ErrInvalidAssistanceType, unitValue, money.Scale)
	}

	cur, err := ParseCurrency(currencyCode)
	if err != nil {
		return nil, err
	}

	return &AssistanceType{
		projectID: projectID,
		name:      name,
		kind:      kind,
		unit:      unit,
		unitValue: unitValue,
		currency:  cur,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructAssistanceType reconstructs an assistance type from persistence
func ReconstructAssistanceType(id, projectID uint, name string, kind Kind, unit string, unitValue decimal.Decimal, currencyCode string, createdAt time.Time) (*AssistanceType, error) {
	if id == 0 {
		return nil, fmt.Errorf("assistance type ID cannot be zero")
	}
	cur, err := ParseCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	return &AssistanceType{
		id:        id,
		projectID: projectID,
		name:      name,
		kind:      kind,
		unit:      unit,
		unitValue: unitValue,
		currency:  cur,
		createdAt: createdAt,
	}, nil
}

// ParseCurrency accepts a recognised ISO 4217 code in any case.
func ParseCurrency(code string) (currency.Unit, error) {
	cur, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("%w: currency %q is not an ISO 4217 code", ErrInvalidAssistanceType, code)
	}
	return cur, nil
}

func (a *AssistanceType) ID() uint {
	return a.id
}

func (a *AssistanceType) ProjectID() uint {
	return a.projectID
}

func (a *AssistanceType) Name() string {
	return a.name
}

func (a *AssistanceType) Kind() Kind {
	return a.kind
}

func (a *AssistanceType) Unit() string {
	return a.unit
}

func (a *AssistanceType) UnitValue() decimal.Decimal {
	return a.unitValue
}

// Currency returns the ISO 4217 code
func (a *AssistanceType) Currency() string {
	return a.currency.String()
}

func (a *AssistanceType) CreatedAt() time.Time {
	return a.createdAt
}

// SetID sets the assistance type ID (only for persistence layer use)
func (a *AssistanceType) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assistance type ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assistance type ID cannot be zero")
	}
	a.id = id
	return nil
}
