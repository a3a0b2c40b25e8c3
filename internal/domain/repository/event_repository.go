package repository

import (
	"context"

	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

// EventRepository define el puerto de persistencia para Event (DIP).
type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Event, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Event, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
}
