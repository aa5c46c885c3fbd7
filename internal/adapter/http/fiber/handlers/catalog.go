package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/service/catalog"
)

// CatalogHandler serves the reference data the gate and lease forms are
// populated from: rates, rate types, vehicle types, payment methods and
// periodicities.
type CatalogHandler struct {
	service *catalog.Service
	log     *zap.Logger
}

func NewCatalogHandler(service *catalog.Service, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

type RateRequest struct {
	Name       string          `json:"nombre"`
	Cost       decimal.Decimal `json:"costo"`
	RateTypeID string          `json:"tarifaTipoId"`
}

func (h *CatalogHandler) ListRates(c *fiber.Ctx) error {
	rates, err := h.service.ListRates(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, fiber.Map{
			"id":           r.ID,
			"nombre":       r.Name,
			"costo":        r.Cost,
			"tarifaTipoId": r.RateTypeID,
		})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Consulta realizada de forma satisfactoria", "data": rows})
}

func (h *CatalogHandler) CreateRate(c *fiber.Ctx) error {
	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	rate, err := h.service.CreateRate(c.Context(), catalog.RateRequest{
		Name:       req.Name,
		Cost:       req.Cost,
		RateTypeID: req.RateTypeID,
	})
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Tarifa creada",
		"data":    fiber.Map{"id": rate.ID, "nombre": rate.Name, "costo": rate.Cost},
	})
}

func (h *CatalogHandler) UpdateRate(c *fiber.Ctx) error {
	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	rate, err := h.service.UpdateRate(c.Context(), c.Params("id"), catalog.RateRequest{
		Name:       req.Name,
		Cost:       req.Cost,
		RateTypeID: req.RateTypeID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Tarifa no encontrada"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Tarifa actualizada",
		"data":    fiber.Map{"id": rate.ID, "nombre": rate.Name, "costo": rate.Cost},
	})
}

func (h *CatalogHandler) DeleteRate(c *fiber.Ctx) error {
	if err := h.service.DeleteRate(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Tarifa no encontrada"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Tarifa eliminada"})
}

type RateTypeRequest struct {
	Name string `json:"nombre"`
	Unit string `json:"unidad"`
}

func (h *CatalogHandler) ListRateTypes(c *fiber.Ctx) error {
	types, err := h.service.ListRateTypes(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(types))
	for _, t := range types {
		rows = append(rows, fiber.Map{"id": t.ID, "nombre": t.Name, "unidad": t.Unit})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Consulta realizada de forma satisfactoria", "data": rows})
}

func (h *CatalogHandler) CreateRateType(c *fiber.Ctx) error {
	var req RateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	rt, err := h.service.CreateRateType(c.Context(), req.Name, domain.RateUnit(req.Unit))
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Tipo de tarifa creado",
		"data":    fiber.Map{"id": rt.ID, "nombre": rt.Name, "unidad": rt.Unit},
	})
}

func (h *CatalogHandler) UpdateRateType(c *fiber.Ctx) error {
	var req RateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	rt, err := h.service.UpdateRateType(c.Context(), c.Params("id"), req.Name, domain.RateUnit(req.Unit))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Tipo de tarifa no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Tipo de tarifa actualizado",
		"data":    fiber.Map{"id": rt.ID, "nombre": rt.Name, "unidad": rt.Unit},
	})
}

func (h *CatalogHandler) DeleteRateType(c *fiber.Ctx) error {
	if err := h.service.DeleteRateType(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Tipo de tarifa no encontrado"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Tipo de tarifa eliminado"})
}

type VehicleTypeRequest struct {
	Name string `json:"nombre"`
}

func (h *CatalogHandler) ListVehicleTypes(c *fiber.Ctx) error {
	types, err := h.service.ListVehicleTypes(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(types))
	for _, t := range types {
		rows = append(rows, fiber.Map{"id": t.ID, "nombre": t.Name})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Consulta realizada de forma satisfactoria", "data": rows})
}

func (h *CatalogHandler) CreateVehicleType(c *fiber.Ctx) error {
	var req VehicleTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	vt, err := h.service.CreateVehicleType(c.Context(), req.Name)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Tipo de vehículo creado",
		"data":    fiber.Map{"id": vt.ID, "nombre": vt.Name},
	})
}

type PaymentMethodRequest struct {
	Name string `json:"nombre"`
	Card bool   `json:"esTarjeta"`
}

func (h *CatalogHandler) ListPaymentMethods(c *fiber.Ctx) error {
	methods, err := h.service.ListPaymentMethods(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, fiber.Map{"id": m.ID, "nombre": m.Name, "esTarjeta": m.Card})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Consulta realizada de forma satisfactoria", "data": rows})
}

func (h *CatalogHandler) CreatePaymentMethod(c *fiber.Ctx) error {
	var req PaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	pm, err := h.service.CreatePaymentMethod(c.Context(), req.Name, req.Card)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Medio de pago creado",
		"data":    fiber.Map{"id": pm.ID, "nombre": pm.Name, "esTarjeta": pm.Card},
	})
}

func (h *CatalogHandler) UpdatePaymentMethod(c *fiber.Ctx) error {
	var req PaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	pm, err := h.service.UpdatePaymentMethod(c.Context(), c.Params("id"), req.Name, req.Card)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Medio de pago no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Medio de pago actualizado",
		"data":    fiber.Map{"id": pm.ID, "nombre": pm.Name, "esTarjeta": pm.Card},
	})
}

func (h *CatalogHandler) DeletePaymentMethod(c *fiber.Ctx) error {
	if err := h.service.DeletePaymentMethod(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Medio de pago no encontrado"})
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Medio de pago eliminado"})
}

type PeriodicityRequest struct {
	Name         string `json:"nombre"`
	Days         int    `json:"dias"`
	ParkingLotID string `json:"parqueaderoId"`
}

func (h *CatalogHandler) ListPeriodicities(c *fiber.Ctx) error {
	periodicities, err := h.service.ListPeriodicities(c.Context(), c.Query("parqueaderoId"))
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(periodicities))
	for _, p := range periodicities {
		rows = append(rows, fiber.Map{"id": p.ID, "nombre": p.Name, "dias": p.Days})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Consulta realizada de forma satisfactoria", "data": rows})
}

func (h *CatalogHandler) CreatePeriodicity(c *fiber.Ctx) error {
	var req PeriodicityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	p, err := h.service.CreatePeriodicity(c.Context(), req.Name, req.Days, req.ParkingLotID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Periodicidad creada",
		"data":    fiber.Map{"id": p.ID, "nombre": p.Name, "dias": p.Days},
	})
}
