package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	s  *Store
	tx *dataset
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.s.with(r.tx, func(d *dataset) error {
		if _, ok := d.companies[c.ID]; ok {
			return fmt.Errorf("%w: empresa %s", domain.ErrDuplicate, c.ID)
		}
		for _, other := range d.companies {
			if other.NameKey == c.NameKey {
				return fmt.Errorf("%w: ya existe una empresa con ese nombre", domain.ErrDuplicate)
			}
		}
		d.companies[c.ID] = copyCompany(*c)
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.s.with(r.tx, func(d *dataset) error {
		if c, ok := d.companies[id]; ok {
			cp := copyCompany(c)
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate equivale a GetByID: dentro de una tx el mutex del store ya serializa.
func (r *CompanyRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

func (r *CompanyRepo) GetByNameKey(_ context.Context, nameKey string) (*entity.Company, error) {
	var out *entity.Company
	err := r.s.with(r.tx, func(d *dataset) error {
		for _, c := range d.companies {
			if c.NameKey == nameKey {
				cp := copyCompany(c)
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	err := r.s.with(r.tx, func(d *dataset) error {
		all := make([]*entity.Company, 0, len(d.companies))
		for _, c := range d.companies {
			cp := copyCompany(c)
			all = append(all, &cp)
		}
		sortByNewest(all, func(c *entity.Company) (int64, string) { return c.CreatedAt.UnixNano(), c.ID })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Approve(_ context.Context, id string, now time.Time) error {
	return r.s.with(r.tx, func(d *dataset) error {
		c, ok := d.companies[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.IsActive = true
		c.UpdatedAt = now
		d.companies[id] = c
		return nil
	})
}

func (r *CompanyRepo) AssignPackage(_ context.Context, in *entity.Company) error {
	return r.s.with(r.tx, func(d *dataset) error {
		c, ok := d.companies[in.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if in.ActivePackageID != nil {
			if _, ok := d.packages[*in.ActivePackageID]; !ok {
				return fmt.Errorf("%w: paquete", domain.ErrNotFound)
			}
		}
		c.ActivePackageID = in.ActivePackageID
		c.PackageExpiryDate = in.PackageExpiryDate
		c.EventLimit = in.EventLimit
		c.EventCountRemaining = in.EventCountRemaining
		c.UpdatedAt = in.UpdatedAt
		d.companies[in.ID] = copyCompany(c)
		return nil
	})
}

func (r *CompanyRepo) DecrementQuota(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.with(r.tx, func(d *dataset) error {
		c, found := d.companies[id]
		if !found || c.EventCountRemaining <= 0 {
			return nil
		}
		c.EventCountRemaining--
		c.UpdatedAt = time.Now()
		d.companies[id] = c
		ok = true
		return nil
	})
	return ok, err
}

func (r *CompanyRepo) IncrementQuota(_ context.Context, id string) error {
	return r.s.with(r.tx, func(d *dataset) error {
		c, found := d.companies[id]
		if !found {
			return nil
		}
		if c.EventCountRemaining < c.EventLimit {
			c.EventCountRemaining++
		}
		c.UpdatedAt = time.Now()
		d.companies[id] = c
		return nil
	})
}

func copyCompany(c entity.Company) entity.Company {
	if c.ActivePackageID != nil {
		id := *c.ActivePackageID
		c.ActivePackageID = &id
	}
	if c.PackageExpiryDate != nil {
		t := *c.PackageExpiryDate
		c.PackageExpiryDate = &t
	}
	return c
}
