// Package audit describes the append-only change log kept for compliance.
package audit

import (
	"context"
	"time"
)

// Action names what happened to a row.
type Action string

const (
	ActionCreate            Action = "create"
	ActionStatusChange      Action = "status_change"
	ActionApplyDistribution Action = "apply_distribution"
	ActionZeroOut           Action = "zero_out"
	ActionConfirm           Action = "confirm"
	ActionPlan              Action = "plan"
	ActionConsent           Action = "consent"
	ActionUpdate            Action = "update"
)

// Entry is one audit log line. Old and new values are stored as JSON.
type Entry struct {
	ID        uint
	ActorID   string
	Action    Action
	TableName string
	RecordID  uint
	OldValues map[string]any
	NewValues map[string]any
	CreatedAt time.Time
}

// Filter narrows audit log listings. Zero values match everything.
type Filter struct {
	TableName string
	RecordID  uint
	Page      int
	PageSize  int
}

// Repository appends and reads audit entries. Append joins the caller's transaction.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
}
