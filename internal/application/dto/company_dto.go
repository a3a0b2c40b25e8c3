package dto

import "time"

// RegisterCompanyRequest entrada pública para registrar una empresa con su admin.
type RegisterCompanyRequest struct {
	Company CompanyFields `json:"company" validate:"required"`
	Admin   AdminFields   `json:"admin" validate:"required"`
}

// CompanyFields datos de la empresa en el registro.
type CompanyFields struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Address       string `json:"address" validate:"required,max=300"`
	ContactPerson string `json:"contact_person" validate:"required,max=200"`
	ContactEmail  string `json:"contact_email" validate:"required,email"`
	ContactPhone  string `json:"contact_phone" validate:"required,max=50"`
}

// AdminFields datos del usuario admin que se crea junto con la empresa.
type AdminFields struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterCompanyResponse salida del registro: la empresa queda pendiente de aprobación.
type RegisterCompanyResponse struct {
	Message string                 `json:"message"`
	Company RegisteredCompanyBrief `json:"company"`
}

// RegisteredCompanyBrief resumen de la empresa recién registrada.
type RegisteredCompanyBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// AssignPackageRequest entrada para asignar un paquete a una empresa.
type AssignPackageRequest struct {
	PackageID string `json:"package_id" validate:"required,uuid"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Address             string           `json:"address"`
	ContactPerson       string           `json:"contact_person"`
	ContactEmail        string           `json:"contact_email"`
	ContactPhone        string           `json:"contact_phone"`
	IsActive            bool             `json:"is_active"`
	ActivePackageID     *string          `json:"active_package_id"`
	ActivePackage       *PackageResponse `json:"active_package,omitempty"`
	PackageExpiryDate   *time.Time       `json:"package_expiry_date"`
	EventLimit          int              `json:"event_limit"`
	EventCountRemaining int              `json:"event_count_remaining"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
