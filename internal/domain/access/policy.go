// Package access concentra la política de autorización del portal en un único
// predicado puro: Allowed(principal, acción, recurso). Ningún handler ni caso de
// uso decide permisos por su cuenta; todos llaman a Check antes de mutar.
package access

import (
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

// Action es la operación que se intenta sobre un recurso.
type Action string

const (
	ActionRead          Action = "read"
	ActionList          Action = "list" // listado global (todas las empresas)
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionApprove       Action = "approve"
	ActionAssignPackage Action = "assign_package"
)

// Kind es el tipo de recurso protegido.
type Kind string

const (
	KindCompany Kind = "company"
	KindPackage Kind = "package"
	KindEvent   Kind = "event"
	KindUser    Kind = "user"
)

// Principal es la identidad autenticada que hace la petición.
type Principal struct {
	UserID    string
	Role      string
	CompanyID string // vacío para superadmin
}

// IsSuperAdmin informa si el principal es superadmin.
func (p Principal) IsSuperAdmin() bool { return p.Role == entity.RoleSuperAdmin }

// Resource describe el objetivo de la acción.
type Resource struct {
	Kind      Kind
	CompanyID string // empresa dueña del recurso (vacío = global)
	OwnerID   string // para KindUser: id del usuario objetivo
	Role      string // para KindUser: rol actual o solicitado del usuario objetivo
}

// Company construye el recurso de una empresa.
func Company(companyID string) Resource { return Resource{Kind: KindCompany, CompanyID: companyID} }

// Package construye el recurso del catálogo de paquetes.
func Package() Resource { return Resource{Kind: KindPackage} }

// Event construye el recurso de los eventos de una empresa.
func Event(companyID string) Resource { return Resource{Kind: KindEvent, CompanyID: companyID} }

// User construye el recurso de un usuario (rol = rol actual o solicitado).
func User(companyID, userID, role string) Resource {
	return Resource{Kind: KindUser, CompanyID: companyID, OwnerID: userID, Role: role}
}

// Allowed evalúa la política. Prioridad: superadmin > admin > dataentry.
func Allowed(p Principal, action Action, res Resource) bool {
	if p.UserID == "" {
		return false
	}
	if p.IsSuperAdmin() {
		return true
	}
	// Lectura del catálogo: cualquier usuario autenticado.
	if res.Kind == KindPackage {
		return action == ActionRead
	}
	// Listados globales y acciones de ciclo de vida de empresa son del superadmin.
	if action == ActionList || action == ActionApprove || action == ActionAssignPackage {
		return false
	}
	if p.CompanyID == "" || res.CompanyID != p.CompanyID {
		return false
	}

	switch p.Role {
	case entity.RoleAdmin:
		return adminAllowed(action, res)
	case entity.RoleDataEntry:
		return dataEntryAllowed(p, action, res)
	}
	return false
}

func adminAllowed(action Action, res Resource) bool {
	switch res.Kind {
	case KindCompany:
		return action == ActionRead
	case KindEvent:
		return true
	case KindUser:
		// nunca sobre (ni hacia) un superadmin
		return res.Role != entity.RoleSuperAdmin
	}
	return false
}

func dataEntryAllowed(p Principal, action Action, res Resource) bool {
	switch res.Kind {
	case KindCompany:
		return action == ActionRead
	case KindEvent:
		return action == ActionRead || action == ActionCreate
	case KindUser:
		return action == ActionRead && res.OwnerID == p.UserID
	}
	return false
}

// Check devuelve domain.ErrForbidden si la acción no está permitida.
func Check(p Principal, action Action, res Resource) error {
	if !Allowed(p, action, res) {
		return domain.ErrForbidden
	}
	return nil
}
