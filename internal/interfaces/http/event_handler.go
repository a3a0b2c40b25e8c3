package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/application/ledger"
)

// EventHandler expone el ledger de eventos.
type EventHandler struct {
	ledger *ledger.EventLedger
}

// NewEventHandler construye el handler inyectando el ledger.
func NewEventHandler(l *ledger.EventLedger) *EventHandler {
	return &EventHandler{ledger: l}
}

// Create godoc
// @Summary      Crear evento
// @Description  Consume una unidad de cuota de la empresa. Si company_id se omite se usa la del token.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEventRequest  true  "Datos del evento"
// @Success      201   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION | COMPANY_INACTIVE | NO_PACKAGE | QUOTA_EXHAUSTED | PACKAGE_EXPIRED"
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEventRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAll godoc
// @Summary      Listar todos los eventos (superadmin)
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.EventListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/events [get]
func (h *EventHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.ledger.ListAll(c.UserContext(), GetPrincipal(c), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByCompany godoc
// @Summary      Listar eventos de una empresa
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.EventListResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Router       /api/events/company/{companyId} [get]
func (h *EventHandler) ListByCompany(c *fiber.Ctx) error {
	companyID, err := paramID(c, "companyId")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.ListByCompany(c.UserContext(), GetPrincipal(c), companyID, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener evento
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar evento
// @Description  No modifica la cuota.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID del evento"
// @Param        body  body  dto.UpdateEventRequest  true  "Campos a reemplazar"
// @Success      200   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateEventRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar evento
// @Description  Devuelve una unidad de cuota a la empresa (sin superar su límite).
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.ledger.Delete(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "evento eliminado"})
}
