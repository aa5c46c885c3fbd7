package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

// leaseDateLayout matches the date+time pair the lease forms send.
const leaseDateLayout = "2006/01/02 15:04"

type LeaseHandler struct {
	service ports.LeaseService
	log     *zap.Logger
}

func NewLeaseHandler(service ports.LeaseService, log *zap.Logger) *LeaseHandler {
	return &LeaseHandler{
		service: service,
		log:     log,
	}
}

type LeaseRequest struct {
	Description     string `json:"descripcion"`
	VehicleID       string `json:"vehiculoId"`
	PeriodicityID   string `json:"periodicidadId"`
	PaymentMethodID string `json:"medioPagoId"`
	RateID          string `json:"tarifaId"`
	StartDate       string `json:"fechaInicio"`
	StartHour       string `json:"horaInicio"`
	EndDate         string `json:"fechaFin"`
	EndHour         string `json:"horaFin"`
}

func (r LeaseRequest) toService() (ports.LeaseRequest, error) {
	start, err := time.ParseInLocation(leaseDateLayout, fmt.Sprintf("%s %s", r.StartDate, r.StartHour), time.Local)
	if err != nil {
		return ports.LeaseRequest{}, fmt.Errorf("fecha de inicio inválida: %w", err)
	}
	end, err := time.ParseInLocation(leaseDateLayout, fmt.Sprintf("%s %s", r.EndDate, r.EndHour), time.Local)
	if err != nil {
		return ports.LeaseRequest{}, fmt.Errorf("fecha de fin inválida: %w", err)
	}

	return ports.LeaseRequest{
		Description:     r.Description,
		VehicleID:       r.VehicleID,
		PeriodicityID:   r.PeriodicityID,
		PaymentMethodID: r.PaymentMethodID,
		RateID:          r.RateID,
		StartTime:       start,
		EndTime:         end,
	}, nil
}

func leasePayload(d *ports.LeaseDetails) fiber.Map {
	return fiber.Map{
		"id":              d.Lease.ID,
		"vehiculoId":      d.Lease.VehicleID,
		"periodicidadId":  d.Lease.PeriodicityID,
		"tarifaId":        d.Lease.RateID,
		"medioPagoId":     d.Lease.PaymentMethodID,
		"periodicidad":    d.PeriodicityName,
		"medioPago":       d.PaymentMethodName,
		"tarifa":          d.RateName,
		"tarifa_costo":    d.RateCost,
		"descripcion":     d.Lease.Description,
		"fecha_inicio":    d.Lease.StartTime,
		"fecha_fin":       d.Lease.EndTime,
		"ha_sido_pausado": d.Lease.Paused,
		"tiempo_pausa":    d.Lease.PauseDays,
	}
}

// Create handles POST /cliente/vehiculo/arrendamiento
func (h *LeaseHandler) Create(c *fiber.Ctx) error {
	var req LeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	svcReq, err := req.toService()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	details, err := h.service.Create(c.Context(), svcReq)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) || errors.Is(err, domain.ErrRateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Vehículo o tarifa no encontrada"})
		}
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Arrendamiento creado",
		"data":    leasePayload(details),
	})
}

// Update handles PUT /cliente/vehiculo/arrendamiento/:id
func (h *LeaseHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req LeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	svcReq, err := req.toService()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	details, err := h.service.Update(c.Context(), id, svcReq)
	if err != nil {
		if errors.Is(err, domain.ErrLeaseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Arrendamiento no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Arrendamiento actualizado",
		"data":    leasePayload(details),
	})
}

// Delete handles DELETE /cliente/vehiculo/arrendamiento/:id
func (h *LeaseHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrLeaseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Arrendamiento no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Arrendamiento eliminado"})
}

// ListByVehicle handles GET /cliente/vehiculo/:vehiculo_id/arrendamientos
func (h *LeaseHandler) ListByVehicle(c *fiber.Ctx) error {
	vehicleID := c.Params("vehiculo_id")

	leases, err := h.service.ListByVehicle(c.Context(), vehicleID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(leases))
	for i := range leases {
		rows = append(rows, leasePayload(&leases[i]))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Consulta realizada de forma satisfactoria",
		"data":    rows,
	})
}

type TogglePauseRequest struct {
	PauseDays int `json:"tiempoPausa"`
}

// TogglePause handles PUT /cliente/vehiculo/arrendamiento/:id/cambiar-estado-pausa.
// A pause that exceeds the remaining lease time is a warning outcome, not an
// error: the UI shows it and nothing changes.
func (h *LeaseHandler) TogglePause(c *fiber.Ctx) error {
	id := c.Params("id")

	var req TogglePauseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	lease, err := h.service.TogglePause(c.Context(), id, req.PauseDays)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLeaseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Arrendamiento no encontrado"})
		case errors.Is(err, domain.ErrPauseExceedsRemaining):
			return c.JSON(fiber.Map{"status": "tiempoMenor", "message": "El tiempo de pausa supera el tiempo restante del arrendamiento"})
		case errors.Is(err, domain.ErrLeaseAlreadyPaused):
			return c.JSON(fiber.Map{"status": "warning", "message": "El arrendamiento ya se encuentra en pausa"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Arrendamiento pausado exitosamente",
		"data": fiber.Map{
			"id":              lease.ID,
			"fecha_fin":       lease.EndTime,
			"ha_sido_pausado": lease.Paused,
			"tiempo_pausa":    lease.PauseDays,
		},
	})
}

// Resume handles PUT /cliente/vehiculo/arrendamiento/:id/reanudar
func (h *LeaseHandler) Resume(c *fiber.Ctx) error {
	id := c.Params("id")

	lease, err := h.service.Resume(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLeaseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Arrendamiento no encontrado"})
		case errors.Is(err, domain.ErrLeaseNotPaused):
			return c.JSON(fiber.Map{"status": "warning", "message": "El arrendamiento no se encuentra en pausa"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Arrendamiento reanudado exitosamente",
		"data": fiber.Map{
			"id":              lease.ID,
			"fecha_fin":       lease.EndTime,
			"ha_sido_pausado": lease.Paused,
		},
	})
}
