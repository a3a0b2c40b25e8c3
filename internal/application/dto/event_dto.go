package dto

import "time"

// CreateEventRequest entrada para crear un evento (consume una unidad de cuota).
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,max=300"`
	Attendees   int       `json:"attendees" validate:"required,min=1,max=2147483647"`
	CompanyID   string    `json:"company_id" validate:"omitempty,uuid"`
}

// UpdateEventRequest entrada para editar un evento (campos opcionales, sin efecto en cuota).
type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location" validate:"omitempty,max=300"`
	Attendees   *int       `json:"attendees" validate:"omitempty,min=1,max=2147483647"`
}

// EventResponse salida de un evento.
type EventResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CreatedBy   string    `json:"created_by"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Attendees   int       `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventListResponse lista paginada de eventos.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
