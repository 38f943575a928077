package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
)

// AuditEntryToModel marshals old/new values to JSON columns
func AuditEntryToModel(entry *audit.Entry) (*models.AuditLogModel, error) {
	oldValues, err := marshalValues(entry.OldValues)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal old values: %w", err)
	}
	newValues, err := marshalValues(entry.NewValues)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal new values: %w", err)
	}
	return &models.AuditLogModel{
		ID:        entry.ID,
		UserID:    entry.ActorID,
		Action:    string(entry.Action),
		TableRef:  entry.TableName,
		RecordID:  entry.RecordID,
		OldValues: oldValues,
		NewValues: newValues,
		CreatedAt: entry.CreatedAt,
	}, nil
}

// AuditEntryToEntity unmarshals an audit row
func AuditEntryToEntity(model *models.AuditLogModel) (*audit.Entry, error) {
	entry := &audit.Entry{
		ID:        model.ID,
		ActorID:   model.UserID,
		Action:    audit.Action(model.Action),
		TableName: model.TableRef,
		RecordID:  model.RecordID,
		CreatedAt: model.CreatedAt,
	}
	if len(model.OldValues) > 0 {
		if err := json.Unmarshal(model.OldValues, &entry.OldValues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal old values of audit entry %d: %w", model.ID, err)
		}
	}
	if len(model.NewValues) > 0 {
		if err := json.Unmarshal(model.NewValues, &entry.NewValues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal new values of audit entry %d: %w", model.ID, err)
		}
	}
	return entry, nil
}

func marshalValues(values map[string]any) (datatypes.JSON, error) {
	if values == nil {
		return nil, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
