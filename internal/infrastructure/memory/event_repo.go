package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo eventos en memoria.
type EventRepo struct {
	s  *Store
	tx *dataset
}

func (r *EventRepo) Create(_ context.Context, e *entity.Event) error {
	return r.s.with(r.tx, func(d *dataset) error {
		if _, ok := d.companies[e.CompanyID]; !ok {
			return fmt.Errorf("%w: empresa", domain.ErrNotFound)
		}
		if _, ok := d.events[e.ID]; ok {
			return domain.ErrDuplicate
		}
		d.events[e.ID] = *e
		return nil
	})
}

func (r *EventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	var out *entity.Event
	err := r.s.with(r.tx, func(d *dataset) error {
		if e, ok := d.events[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EventRepo) Update(_ context.Context, e *entity.Event) error {
	return r.s.with(r.tx, func(d *dataset) error {
		cur, ok := d.events[e.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Title = e.Title
		cur.Description = e.Description
		cur.Date = e.Date
		cur.Location = e.Location
		cur.Attendees = e.Attendees
		cur.UpdatedAt = e.UpdatedAt
		d.events[e.ID] = cur
		return nil
	})
}

func (r *EventRepo) Delete(_ context.Context, id string) error {
	return r.s.with(r.tx, func(d *dataset) error {
		if _, ok := d.events[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.events, id)
		return nil
	})
}

func (r *EventRepo) List(_ context.Context, limit, offset int) ([]*entity.Event, error) {
	return r.filter(func(entity.Event) bool { return true }, limit, offset)
}

func (r *EventRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Event, error) {
	return r.filter(func(e entity.Event) bool { return e.CompanyID == companyID }, limit, offset)
}

func (r *EventRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	n := 0
	err := r.s.with(r.tx, func(d *dataset) error {
		for _, e := range d.events {
			if e.CompanyID == companyID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *EventRepo) filter(keep func(entity.Event) bool, limit, offset int) ([]*entity.Event, error) {
	var out []*entity.Event
	err := r.s.with(r.tx, func(d *dataset) error {
		all := make([]*entity.Event, 0)
		for _, e := range d.events {
			if keep(e) {
				e := e
				all = append(all, &e)
			}
		}
		sortByNewest(all, func(e *entity.Event) (int64, string) { return e.Date.UnixNano(), e.ID })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}
