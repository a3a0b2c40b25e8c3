package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

// EventLedger registra eventos por empresa consumiendo cuota de forma transaccional:
// bloqueo de la fila de la empresa (SELECT FOR UPDATE), checks ordenados,
// insert del evento y decremento condicional en la misma transacción.
type EventLedger struct {
	txRunner  TxRunner
	eventRepo repository.EventRepository
	recorder  Recorder
}

// NewEventLedger construye el caso de uso. recorder puede ser nil.
func NewEventLedger(txRunner TxRunner, eventRepo repository.EventRepository, recorder Recorder) *EventLedger {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &EventLedger{txRunner: txRunner, eventRepo: eventRepo, recorder: recorder}
}

// Create crea un evento para in.CompanyID.
//
// Orden de verificación (se corta en el primer fallo):
//  1. domain.ErrForbidden      principal sin acceso a la empresa.
//  2. domain.ErrNotFound       la empresa no existe.
//  3. domain.ErrCompanyInactive
//  4. domain.ErrNoPackage
//  5. domain.ErrQuotaExhausted
//  6. domain.ErrPackageExpired
//
// Si el insert o el decremento fallan, la transacción completa hace Rollback.
func (l *EventLedger) Create(ctx context.Context, p access.Principal, in dto.CreateEventRequest) (*dto.EventResponse, error) {
	if in.CompanyID == "" {
		in.CompanyID = p.CompanyID
	}
	if err := access.Check(p, access.ActionCreate, access.Event(in.CompanyID)); err != nil {
		l.recorder.EventRejected(reason(err))
		return nil, err
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := time.Now()
	event := &entity.Event{
		ID:          uuid.New().String(),
		CompanyID:   in.CompanyID,
		CreatedBy:   p.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		Attendees:   in.Attendees,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := l.txRunner.Run(ctx, func(companyRepo repository.CompanyRepository, eventRepo repository.EventRepository) error {
		company, err := companyRepo.GetByIDForUpdate(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		if err := company.CheckEventAllowed(now); err != nil {
			return err
		}
		if err := eventRepo.Create(ctx, event); err != nil {
			return err
		}
		ok, err := companyRepo.DecrementQuota(ctx, company.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrQuotaExhausted
		}
		return nil
	})
	if err != nil {
		l.recorder.EventRejected(reason(err))
		return nil, err
	}
	l.recorder.EventCreated(event.CompanyID)
	return toEventResponse(event), nil
}

// Update edita título, descripción, fecha, lugar o asistentes. Nunca toca la cuota.
func (l *EventLedger) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := l.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.Check(p, access.ActionUpdate, access.Event(event.CompanyID)); err != nil {
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title no puede estar vacío", domain.ErrInvalidInput)
		}
		event.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return nil, fmt.Errorf("%w: date inválida", domain.ErrInvalidInput)
		}
		event.Date = *in.Date
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Attendees != nil {
		if *in.Attendees < 1 || *in.Attendees > entity.MaxCount {
			return nil, fmt.Errorf("%w: attendees debe estar entre 1 y %d", domain.ErrInvalidInput, entity.MaxCount)
		}
		event.Attendees = *in.Attendees
	}
	event.UpdatedAt = time.Now()
	if err := l.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// Delete elimina el evento y devuelve una unidad de cuota a su empresa, en la misma transacción.
// La devolución nunca supera el límite del paquete asignado.
func (l *EventLedger) Delete(ctx context.Context, p access.Principal, id string) error {
	event, err := l.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return domain.ErrNotFound
	}
	if err := access.Check(p, access.ActionDelete, access.Event(event.CompanyID)); err != nil {
		return err
	}
	err = l.txRunner.Run(ctx, func(companyRepo repository.CompanyRepository, eventRepo repository.EventRepository) error {
		// El bloqueo de la empresa serializa este borrado con creaciones y reasignaciones en curso.
		company, err := companyRepo.GetByIDForUpdate(ctx, event.CompanyID)
		if err != nil {
			return err
		}
		if err := eventRepo.Delete(ctx, event.ID); err != nil {
			return err
		}
		if company == nil {
			return nil
		}
		return companyRepo.IncrementQuota(ctx, company.ID)
	})
	if err != nil {
		return err
	}
	l.recorder.EventDeleted(event.CompanyID)
	return nil
}

// GetByID obtiene un evento si el principal tiene acceso a su empresa.
func (l *EventLedger) GetByID(ctx context.Context, p access.Principal, id string) (*dto.EventResponse, error) {
	event, err := l.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.Check(p, access.ActionRead, access.Event(event.CompanyID)); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// ListAll lista los eventos de todas las empresas (solo superadmin).
func (l *EventLedger) ListAll(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.EventListResponse, error) {
	if err := access.Check(p, access.ActionList, access.Event("")); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := l.eventRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toEventList(list, page), nil
}

// ListByCompany lista los eventos de una empresa con la misma regla de alcance que GetByID.
func (l *EventLedger) ListByCompany(ctx context.Context, p access.Principal, companyID string, page dto.PageRequest) (*dto.EventListResponse, error) {
	if err := access.Check(p, access.ActionRead, access.Event(companyID)); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := l.eventRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toEventList(list, page), nil
}

func validateCreate(in dto.CreateEventRequest) error {
	switch {
	case in.CompanyID == "":
		return fmt.Errorf("%w: company_id es requerido", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title es requerido", domain.ErrInvalidInput)
	case in.Date.IsZero():
		return fmt.Errorf("%w: date es requerida", domain.ErrInvalidInput)
	case in.Attendees < 1 || in.Attendees > entity.MaxCount:
		return fmt.Errorf("%w: attendees debe estar entre 1 y %d", domain.ErrInvalidInput, entity.MaxCount)
	}
	return nil
}

// reason traduce un error a la etiqueta usada en métricas.
func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCompanyInactive):
		return "company_inactive"
	case errors.Is(err, domain.ErrNoPackage):
		return "no_package"
	case errors.Is(err, domain.ErrQuotaExhausted):
		return "quota_exhausted"
	case errors.Is(err, domain.ErrPackageExpired):
		return "package_expired"
	}
	return "error"
}

func toEventList(list []*entity.Event, page dto.PageRequest) *dto.EventListResponse {
	items := make([]dto.EventResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEventResponse(e))
	}
	return &dto.EventListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

func toEventResponse(e *entity.Event) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		CreatedBy:   e.CreatedBy,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Attendees:   e.Attendees,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
