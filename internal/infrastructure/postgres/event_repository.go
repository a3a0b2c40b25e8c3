package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo implementación de EventRepository sobre PostgreSQL (usable con pool o tx).
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

const eventColumns = `id, company_id, created_by, title, description, date, location, attendees, created_at, updated_at`

// Create inserta un evento. La cuota la descuenta el ledger en la misma tx.
func (r *EventRepo) Create(ctx context.Context, e *entity.Event) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.CompanyID, nullableString(e.CreatedBy), e.Title, e.Description, e.Date, e.Location, e.Attendees,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: empresa", domain.ErrNotFound)
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento. (nil, nil) si no existe.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	e, err := scanEvent(r.q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// Update modifica los campos editables; company_id y created_by no cambian.
func (r *EventRepo) Update(ctx context.Context, e *entity.Event) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE events
		SET title = $2, description = $3, date = $4, location = $5, attendees = $6, updated_at = $7
		WHERE id = $1`,
		e.ID, e.Title, e.Description, e.Date, e.Location, e.Attendees, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un evento. domain.ErrNotFound si ya no existe.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista eventos de todas las empresas.
func (r *EventRepo) List(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date DESC, id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByCompany lista eventos de una empresa, más recientes primero.
func (r *EventRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE company_id = $1 ORDER BY date DESC, id LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// CountByCompany cuenta los eventos de una empresa.
func (r *EventRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

func (r *EventRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Event, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var list []*entity.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var e entity.Event
	var createdBy *string
	if err := row.Scan(
		&e.ID, &e.CompanyID, &createdBy, &e.Title, &e.Description, &e.Date, &e.Location, &e.Attendees,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.CreatedBy = fromNullable(createdBy)
	return &e, nil
}
