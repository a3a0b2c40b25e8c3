package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo implementación de PackageRepository sobre PostgreSQL.
// price se mapea NUMERIC <-> decimal.Decimal con el codec registrado en NewPool.
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

const packageColumns = `id, name, description, price, duration_days, event_limit, is_active, created_at, updated_at`

// Create persiste un paquete nuevo.
func (r *PackageRepo) Create(ctx context.Context, p *entity.Package) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO packages (`+packageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Description, p.Price, p.DurationDays, p.EventLimit, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// GetByID obtiene un paquete. (nil, nil) si no existe.
func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	var p entity.Package
	err := r.q.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.DurationDays, &p.EventLimit, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return &p, nil
}

// List devuelve el catálogo completo ordenado por precio.
func (r *PackageRepo) List(ctx context.Context) ([]*entity.Package, error) {
	rows, err := r.q.Query(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY price, name`)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Package
	for rows.Next() {
		var p entity.Package
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.DurationDays, &p.EventLimit, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update reemplaza los campos editables. domain.ErrNotFound si no existe.
func (r *PackageRepo) Update(ctx context.Context, p *entity.Package) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE packages
		SET name = $2, description = $3, price = $4, duration_days = $5, event_limit = $6,
		    is_active = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.DurationDays, p.EventLimit, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("update package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un paquete. domain.ErrPackageInUse si alguna empresa lo referencia (FK RESTRICT).
func (r *PackageRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPackageInUse
		}
		return fmt.Errorf("delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
