// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORE_DRIVER=memory para desarrollo local sin PostgreSQL.
//
// Las transacciones toman el mutex del store durante todo el callback, trabajan
// sobre una copia del dataset y solo la publican si el callback no devuelve error.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/eventportal-api/internal/application/ledger"
	"github.com/jhoicas/eventportal-api/internal/application/usecase"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)
var _ usecase.RegistrationTxRunner = (*Store)(nil)

// Store contiene todas las tablas en memoria.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

type dataset struct {
	companies map[string]entity.Company
	packages  map[string]entity.Package
	events    map[string]entity.Event
	users     map[string]entity.User
}

func newDataset() *dataset {
	return &dataset{
		companies: map[string]entity.Company{},
		packages:  map[string]entity.Package{},
		events:    map[string]entity.Event{},
		users:     map[string]entity.User{},
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		companies: make(map[string]entity.Company, len(d.companies)),
		packages:  make(map[string]entity.Package, len(d.packages)),
		events:    make(map[string]entity.Event, len(d.events)),
		users:     make(map[string]entity.User, len(d.users)),
	}
	for k, v := range d.companies {
		c.companies[k] = v
	}
	for k, v := range d.packages {
		c.packages[k] = v
	}
	for k, v := range d.events {
		c.events[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	return c
}

// Companies devuelve el repositorio de empresas fuera de transacción.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Packages devuelve el repositorio de paquetes fuera de transacción.
func (s *Store) Packages() *PackageRepo { return &PackageRepo{s: s} }

// Events devuelve el repositorio de eventos fuera de transacción.
func (s *Store) Events() *EventRepo { return &EventRepo{s: s} }

// Users devuelve el repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Run ejecuta fn con repos de empresa y eventos atados a una copia del dataset.
func (s *Store) Run(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	eventRepo repository.EventRepository,
) error) error {
	return s.inTx(ctx, func(tx *dataset) error {
		return fn(&CompanyRepo{s: s, tx: tx}, &EventRepo{s: s, tx: tx})
	})
}

// RunRegistration ejecuta fn con repos de empresa y usuarios atados a una copia del dataset.
func (s *Store) RunRegistration(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	return s.inTx(ctx, func(tx *dataset) error {
		return fn(&CompanyRepo{s: s, tx: tx}, &UserRepo{s: s, tx: tx})
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx
	return nil
}

// with ejecuta fn sobre el dataset de la tx, o sobre el dataset publicado tomando el mutex.
func (s *Store) with(tx *dataset, fn func(d *dataset) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

func sortByNewest[T any](list []T, created func(T) (int64, string)) {
	sort.Slice(list, func(i, j int) bool {
		ti, idi := created(list[i])
		tj, idj := created(list[j])
		if ti != tj {
			return ti > tj
		}
		return idi < idj
	})
}
