package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/service/site"
)

type SiteHandler struct {
	service *site.Service
	log     *zap.Logger
}

func NewSiteHandler(service *site.Service, log *zap.Logger) *SiteHandler {
	return &SiteHandler{
		service: service,
		log:     log,
	}
}

type SiteRequest struct {
	Name         string `json:"nombre"`
	Address      string `json:"direccion"`
	Phone        string `json:"telefono"`
	Email        string `json:"email"`
	ParkingLotID string `json:"parqueaderoId"`
}

func sitePayload(s *domain.Site) fiber.Map {
	return fiber.Map{
		"id":        s.ID,
		"nombre":    s.Name,
		"direccion": s.Address,
		"telefono":  s.Phone,
		"email":     s.Email,
	}
}

// CreateSite handles POST /sede
func (h *SiteHandler) CreateSite(c *fiber.Ctx) error {
	var req SiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	s, err := h.service.CreateSite(c.Context(), site.SiteRequest{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		ParkingLotID: req.ParkingLotID,
	})
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Sede creada",
		"data":    sitePayload(s),
	})
}

// UpdateSite handles PUT /sede/:id
func (h *SiteHandler) UpdateSite(c *fiber.Ctx) error {
	var req SiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	s, err := h.service.UpdateSite(c.Context(), c.Params("id"), site.SiteRequest{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Sede no encontrada"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Sede actualizada",
		"data":    sitePayload(s),
	})
}

// DeleteSite handles DELETE /sede/:id
func (h *SiteHandler) DeleteSite(c *fiber.Ctx) error {
	if err := h.service.DeleteSite(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Sede no encontrada"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Sede eliminada"})
}

// ListSites handles GET /sedes
func (h *SiteHandler) ListSites(c *fiber.Ctx) error {
	sites, err := h.service.ListSites(c.Context(), c.Query("parqueaderoId"))
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(sites))
	for i := range sites {
		rows = append(rows, sitePayload(&sites[i]))
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Consulta realizada de forma satisfactoria", "data": rows})
}

type ModuleRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	SiteID      string `json:"sedeId"`
	Enabled     bool   `json:"habilitado"`
}

func modulePayload(m *domain.ParkingModule) fiber.Map {
	return fiber.Map{
		"id":          m.ID,
		"nombre":      m.Name,
		"descripcion": m.Description,
		"habilitado":  m.Enabled,
		"sedeId":      m.SiteID,
	}
}

// CreateModule handles POST /modulo
func (h *SiteHandler) CreateModule(c *fiber.Ctx) error {
	var req ModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	m, err := h.service.CreateModule(c.Context(), site.ModuleRequest{
		Name:        req.Name,
		Description: req.Description,
		SiteID:      req.SiteID,
		Enabled:     req.Enabled,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Sede no encontrada"})
		}
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Módulo creado",
		"data":    modulePayload(m),
	})
}

// UpdateModule handles PUT /modulo/:id
func (h *SiteHandler) UpdateModule(c *fiber.Ctx) error {
	var req ModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	m, err := h.service.UpdateModule(c.Context(), c.Params("id"), site.ModuleRequest{
		Name:        req.Name,
		Description: req.Description,
		Enabled:     req.Enabled,
	})
	if err != nil {
		if errors.Is(err, domain.ErrModuleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Módulo no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Módulo actualizado",
		"data":    modulePayload(m),
	})
}

// ListModules handles GET /sede/:sede_id/modulos
func (h *SiteHandler) ListModules(c *fiber.Ctx) error {
	modules, err := h.service.ListModules(c.Context(), c.Params("sede_id"))
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(modules))
	for i := range modules {
		rows = append(rows, modulePayload(&modules[i]))
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Consulta realizada de forma satisfactoria", "data": rows})
}

type AssignUserRequest struct {
	Document string `json:"documento"`
}

// AssignUser handles POST /sede/:sede_id/asignar-usuario
func (h *SiteHandler) AssignUser(c *fiber.Ctx) error {
	var req AssignUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	_, err := h.service.AssignUser(c.Context(), c.Params("sede_id"), req.Document)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Usuario no encontrado"})
		case errors.Is(err, domain.ErrAlreadyAssigned):
			return c.JSON(fiber.Map{"status": "existente", "message": "El usuario ya se encuentra asignado a la sede"})
		}
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "message": "Usuario asignado a la sede"})
}

// Assignments handles GET /usuario/:documento/sedes
func (h *SiteHandler) Assignments(c *fiber.Ctx) error {
	assignments, err := h.service.AssignmentsByDocument(c.Context(), c.Params("documento"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Usuario no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, fiber.Map{
			"id":        a.ID,
			"sedeId":    a.SiteID,
			"usuarioId": a.UserID,
		})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Consulta realizada de forma satisfactoria", "data": rows})
}
