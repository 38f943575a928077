package assistance

import "context"

// Repository persists assistance types. There is no update or delete.
type Repository interface {
	Create(ctx context.Context, a *AssistanceType) error
	GetByID(ctx context.Context, id uint) (*AssistanceType, error)
	ListByProject(ctx context.Context, projectID uint) ([]*AssistanceType, error)
}
