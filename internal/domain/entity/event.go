package entity

import "time"

// Event es un registro del ledger de una empresa; cada creación consume una
// unidad de cuota y cada borrado la devuelve.
type Event struct {
	ID          string
	CompanyID   string
	CreatedBy   string // user id; vacío si el usuario fue eliminado
	Title       string
	Description string
	Date        time.Time
	Location    string
	Attendees   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
