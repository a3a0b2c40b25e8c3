package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email es único en todo el store.
type UserRepo struct {
	s  *Store
	tx *dataset
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.with(r.tx, func(d *dataset) error {
		if u.CompanyID != "" {
			if _, ok := d.companies[u.CompanyID]; !ok {
				return fmt.Errorf("%w: empresa", domain.ErrNotFound)
			}
		}
		for _, other := range d.users {
			if other.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *UserRepo) GetSuperAdmin(_ context.Context) (*entity.User, error) {
	var out *entity.User
	err := r.s.with(r.tx, func(d *dataset) error {
		for _, u := range d.users {
			if u.Role != entity.RoleSuperAdmin {
				continue
			}
			if out == nil || u.CreatedAt.Before(out.CreatedAt) {
				u := u
				out = &u
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.s.with(r.tx, func(d *dataset) error {
		cur, ok := d.users[u.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		for id, other := range d.users {
			if id != u.ID && other.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		cur.CompanyID = u.CompanyID
		cur.Email = u.Email
		cur.Name = u.Name
		cur.Role = u.Role
		cur.Status = u.Status
		cur.UpdatedAt = u.UpdatedAt
		d.users[u.ID] = cur
		return nil
	})
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	return r.filter(func(entity.User) bool { return true }, limit, offset)
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	return r.filter(func(u entity.User) bool { return u.CompanyID == companyID }, limit, offset)
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.s.with(r.tx, func(d *dataset) error {
		if _, ok := d.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(d.users, id)
		return nil
	})
}

func (r *UserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.s.with(r.tx, func(d *dataset) error {
		for _, u := range d.users {
			if match(u) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) filter(keep func(entity.User) bool, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.with(r.tx, func(d *dataset) error {
		all := make([]*entity.User, 0)
		for _, u := range d.users {
			if keep(u) {
				u := u
				all = append(all, &u)
			}
		}
		sortByNewest(all, func(u *entity.User) (int64, string) { return u.CreatedAt.UnixNano(), u.ID })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}
