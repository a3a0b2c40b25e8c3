package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo catálogo de paquetes en memoria.
type PackageRepo struct {
	s  *Store
	tx *dataset
}

func (r *PackageRepo) Create(_ context.Context, p *entity.Package) error {
	return r.s.with(r.tx, func(d *dataset) error {
		if _, ok := d.packages[p.ID]; ok {
			return domain.ErrDuplicate
		}
		d.packages[p.ID] = *p
		return nil
	})
}

func (r *PackageRepo) GetByID(_ context.Context, id string) (*entity.Package, error) {
	var out *entity.Package
	err := r.s.with(r.tx, func(d *dataset) error {
		if p, ok := d.packages[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PackageRepo) List(_ context.Context) ([]*entity.Package, error) {
	var out []*entity.Package
	err := r.s.with(r.tx, func(d *dataset) error {
		out = make([]*entity.Package, 0, len(d.packages))
		for _, p := range d.packages {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Price.Cmp(out[j].Price); c != 0 {
			return c < 0
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

func (r *PackageRepo) Update(_ context.Context, p *entity.Package) error {
	return r.s.with(r.tx, func(d *dataset) error {
		if _, ok := d.packages[p.ID]; !ok {
			return domain.ErrNotFound
		}
		d.packages[p.ID] = *p
		return nil
	})
}

// Delete replica el ON DELETE RESTRICT de companies.active_package_id.
func (r *PackageRepo) Delete(_ context.Context, id string) error {
	return r.s.with(r.tx, func(d *dataset) error {
		if _, ok := d.packages[id]; !ok {
			return domain.ErrNotFound
		}
		for _, c := range d.companies {
			if c.ActivePackageID != nil && *c.ActivePackageID == id {
				return domain.ErrPackageInUse
			}
		}
		delete(d.packages, id)
		return nil
	})
}
