package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, name_key, address, contact_person, contact_email, contact_phone,
	is_active, active_package_id, package_expiry_date, event_limit, event_count_remaining,
	created_at, updated_at`

// Create persiste una nueva empresa. domain.ErrDuplicate si name_key ya existe.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.NameKey, c.Address, c.ContactPerson, c.ContactEmail, c.ContactPhone,
		c.IsActive, c.ActivePackageID, c.PackageExpiryDate, c.EventLimit, c.EventCountRemaining,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una empresa con ese nombre", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la empresa bloqueando su fila hasta el fin de la transacción.
// Solo tiene efecto cuando el repositorio está construido sobre una tx.
func (r *CompanyRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1 FOR UPDATE`, id)
}

// GetByNameKey busca por nombre normalizado.
func (r *CompanyRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE name_key = $1`, nameKey)
}

// List lista empresas con paginación, más recientes primero.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Approve marca la empresa como activa. domain.ErrNotFound si no existe.
func (r *CompanyRepo) Approve(ctx context.Context, id string, now time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE companies SET is_active = TRUE, updated_at = $2 WHERE id = $1`, id, now)
	if err != nil {
		return fmt.Errorf("approve company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AssignPackage reemplaza paquete, vencimiento, límite y cuota restante en una sola sentencia.
// Espera el lock de fila de cualquier ledger en curso sobre la misma empresa.
func (r *CompanyRepo) AssignPackage(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		SET active_package_id = $2, package_expiry_date = $3,
		    event_limit = $4, event_count_remaining = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.ActivePackageID, c.PackageExpiryDate, c.EventLimit, c.EventCountRemaining, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: paquete", domain.ErrNotFound)
		}
		return fmt.Errorf("assign package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementQuota descuenta una unidad solo si queda cuota. ok=false si no se actualizó ninguna fila.
func (r *CompanyRepo) DecrementQuota(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE companies
		SET event_count_remaining = event_count_remaining - 1, updated_at = NOW()
		WHERE id = $1 AND event_count_remaining > 0`, id)
	if err != nil {
		return false, fmt.Errorf("decrement quota: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementQuota devuelve una unidad de cuota sin superar event_limit.
func (r *CompanyRepo) IncrementQuota(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE companies
		SET event_count_remaining = LEAST(event_count_remaining + 1, event_limit), updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment quota: %w", err)
	}
	return nil
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.NameKey, &c.Address, &c.ContactPerson, &c.ContactEmail, &c.ContactPhone,
		&c.IsActive, &c.ActivePackageID, &c.PackageExpiryDate, &c.EventLimit, &c.EventCountRemaining,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
