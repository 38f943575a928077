// Package audit writes and reads the change log.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/shared/authorization"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/logger"
)

// Recorder appends audit entries on behalf of the actor found in the context.
// Called inside a transaction, the entry commits or rolls back with the change it describes.
type Recorder struct {
	repo   audit.Repository
	logger logger.Interface
}

func NewRecorder(repo audit.Repository, log logger.Interface) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: log,
	}
}

func (r *Recorder) Record(ctx context.Context, action audit.Action, table string, recordID uint, oldValues, newValues map[string]any) error {
	entry := &audit.Entry{
		ActorID:   authorization.ActorFromContext(ctx).ID,
		Action:    action,
		TableName: table,
		RecordID:  recordID,
		OldValues: oldValues,
		NewValues: newValues,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Errorw("failed to append audit entry",
			"action", action,
			"table", table,
			"record_id", recordID,
			"error", err)
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// EntryResponse is the API view of an audit entry
type EntryResponse struct {
	ID        uint           `json:"id"`
	ActorID   string         `json:"user_id"`
	Action    string         `json:"action"`
	TableName string         `json:"table_name"`
	RecordID  uint           `json:"record_id"`
	OldValues map[string]any `json:"old_values,omitempty"`
	NewValues map[string]any `json:"new_values,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// List returns audit entries newest first.
func (r *Recorder) List(ctx context.Context, filter audit.Filter) ([]*EntryResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 || filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.DefaultPageSize
	}

	entries, total, err := r.repo.List(ctx, filter)
	if err != nil {
		r.logger.Errorw("failed to list audit entries", "error", err)
		return nil, 0, common.ToAppError(err, "failed to list audit log")
	}

	out := make([]*EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &EntryResponse{
			ID:        e.ID,
			ActorID:   e.ActorID,
			Action:    string(e.Action),
			TableName: e.TableName,
			RecordID:  e.RecordID,
			OldValues: e.OldValues,
			NewValues: e.NewValues,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, total, nil
}
