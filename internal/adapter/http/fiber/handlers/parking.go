package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

type ParkingHandler struct {
	service ports.ParkingService
	tickets ports.TicketService
	log     *zap.Logger
}

func NewParkingHandler(service ports.ParkingService, tickets ports.TicketService, log *zap.Logger) *ParkingHandler {
	return &ParkingHandler{
		service: service,
		tickets: tickets,
		log:     log,
	}
}

type EnterRequest struct {
	ModuleID      string `json:"moduloId"`
	Plate         string `json:"placa"`
	VehicleTypeID string `json:"vehiculoTipoId"`
	RateID        string `json:"tarifaId"`
}

type ExitRequest struct {
	Plate           string          `json:"placa"`
	AmountPaid      decimal.Decimal `json:"totalPagado"`
	PaymentMethodID string          `json:"metodoPagoId"`
	LeaseCovered    bool            `json:"esArrendamiento"`
}

// SearchVehicle handles GET /vehiculo/buscar/:placa
func (h *ParkingHandler) SearchVehicle(c *fiber.Ctx) error {
	plate := c.Params("placa")

	vehicle, vt, err := h.service.SearchVehicle(c.Context(), plate)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return c.JSON(fiber.Map{"status": "failure", "message": "No existe un vehículo con la placa indicada."})
		}
		return fiber.ErrInternalServerError
	}

	typeName := ""
	typeID := ""
	if vt != nil {
		typeName = vt.Name
		typeID = vt.ID
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"id":             vehicle.ID,
			"placa":          vehicle.Plate,
			"marca":          vehicle.Brand,
			"modelo":         vehicle.Model,
			"tipo":           typeName,
			"vehiculoTipoId": typeID,
			"disponible":     vehicle.Available,
		},
	})
}

// Enter handles POST /parqueo/ingresar. Business refusals come back as HTTP
// 200 with a non-success status; the gate UI shows them as warnings.
func (h *ParkingHandler) Enter(c *fiber.Ctx) error {
	var req EnterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	result, err := h.service.Enter(c.Context(), ports.EnterRequest{
		ModuleID:      req.ModuleID,
		Plate:         req.Plate,
		VehicleTypeID: req.VehicleTypeID,
		RateID:        req.RateID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrModuleOccupied):
			return c.JSON(fiber.Map{"status": "warning", "message": "El módulo seleccionado se encuentra ocupado"})
		case errors.Is(err, domain.ErrModuleDisabled):
			return c.JSON(fiber.Map{"status": "warning", "message": "El módulo seleccionado se encuentra deshabilitado"})
		case errors.Is(err, domain.ErrVehicleAlreadyParked):
			return c.JSON(fiber.Map{"status": "warning", "message": "El vehículo ya se encuentra en el parqueadero"})
		case errors.Is(err, domain.ErrLeaseExpired):
			return c.JSON(fiber.Map{"status": "warning", "message": "El arrendamiento del vehículo ha finalizado"})
		case errors.Is(err, domain.ErrLeasePaused):
			return c.JSON(fiber.Map{"status": "warning", "message": "El arrendamiento del vehículo se encuentra en pausa"})
		case errors.Is(err, domain.ErrModuleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Módulo no encontrado"})
		case errors.Is(err, domain.ErrRateNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Tarifa no encontrada"})
		}
		return fiber.ErrInternalServerError
	}

	vehicleType := fiber.Map{
		"tarifa": fiber.Map{
			"id":     result.Rate.ID,
			"nombre": result.Rate.Name,
			"costo":  result.Rate.Cost,
		},
	}
	if result.VehicleType != nil {
		vehicleType["id"] = result.VehicleType.ID
		vehicleType["nombre"] = result.VehicleType.Name
	}

	if result.LeaseCovered {
		return c.JSON(fiber.Map{
			"status":       "arrendamiento",
			"message":      "El vehículo cuenta con un arrendamiento activo. Puede ingresar al parqueadero.",
			"tipoVehiculo": vehicleType,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Vehículo ingresado al parqueadero",
		"data": fiber.Map{
			"tipoVehiculo": vehicleType,
		},
	})
}

// Exit handles POST /parqueo/vehiculo/retirar
func (h *ParkingHandler) Exit(c *fiber.Ctx) error {
	var req ExitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	err := h.service.Exit(c.Context(), ports.ExitRequest{
		Plate:           req.Plate,
		AmountPaid:      req.AmountPaid,
		PaymentMethodID: req.PaymentMethodID,
		LeaseCovered:    req.LeaseCovered,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVehicleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Vehículo no encontrado"})
		case errors.Is(err, domain.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Parqueo no encontrado o ya retirado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Vehículo retirado exitosamente"})
}

// ActiveSessions handles GET /sede/:sede_id/parqueos-activos
func (h *ParkingHandler) ActiveSessions(c *fiber.Ctx) error {
	siteID := c.Params("sede_id")

	sessions, err := h.service.ActiveSessions(c.Context(), siteID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(sessions))
	for _, s := range sessions {
		typeName := ""
		if s.VehicleType != nil {
			typeName = s.VehicleType.Name
		}
		rows = append(rows, fiber.Map{
			"id": s.Session.ID,
			"vehiculo": fiber.Map{
				"id":     s.Vehicle.ID,
				"placa":  s.Vehicle.Plate,
				"marca":  s.Vehicle.Brand,
				"modelo": s.Vehicle.Model,
				"tipo":   typeName,
				"tarifa": fiber.Map{
					"id":     s.Rate.ID,
					"nombre": s.Rate.Name,
					"costo":  s.Rate.Cost,
				},
			},
			"modulo": fiber.Map{
				"id":          s.Module.ID,
				"nombre":      s.Module.Name,
				"habilitado":  s.Module.Enabled,
				"descripcion": s.Module.Description,
			},
			"fechaHoraEntrada": s.Session.EntryTime,
			"fechaHoraSalida":  s.Session.ExitTime,
			"esArrendamiento":  s.Leased,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Consulta realizada de forma satisfactoria",
		"data":    rows,
	})
}

type EditVehicleRequest struct {
	Brand         string `json:"marca"`
	Model         string `json:"modelo"`
	VehicleTypeID string `json:"vehiculoTipoId"`
}

// EditVehicle handles PUT /vehiculo/:placa
func (h *ParkingHandler) EditVehicle(c *fiber.Ctx) error {
	plate := c.Params("placa")

	var req EditVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	_, err := h.service.EditVehicle(c.Context(), plate, ports.VehicleUpdate{
		Brand:         req.Brand,
		Model:         req.Model,
		VehicleTypeID: req.VehicleTypeID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Vehículo no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Vehículo editado exitosamente"})
}

// QuoteSession handles GET /parqueo/:placa/cotizar. Computes what an open
// pay-per-use session owes right now.
func (h *ParkingHandler) QuoteSession(c *fiber.Ctx) error {
	plate := c.Params("placa")

	quote, err := h.service.QuoteOpenSession(c.Context(), plate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVehicleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Vehículo no encontrado"})
		case errors.Is(err, domain.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Parqueo no encontrado o ya retirado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"fechaHoraEntrada": quote.Session.EntryTime,
			"duracionMinutos":  int64(quote.Duration / time.Minute),
			"unidades":         quote.Units,
			"tarifa": fiber.Map{
				"id":     quote.Rate.ID,
				"nombre": quote.Rate.Name,
				"costo":  quote.Rate.Cost,
			},
			"totalAPagar": quote.Due,
		},
	})
}

// GenerateTicket handles GET /generar_ticket/:placa, returning the entry
// ticket as a PDF attachment.
func (h *ParkingHandler) GenerateTicket(c *fiber.Ctx) error {
	plate := c.Params("placa")

	attendant := ""
	if user, ok := c.Locals("user").(*domain.User); ok {
		attendant = fmt.Sprintf("%s %s", user.Names, user.Surnames)
	}

	pdf, err := h.tickets.GenerateEntryTicket(c.Context(), plate, attendant)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVehicleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Vehículo no encontrado"})
		case errors.Is(err, domain.ErrRateNotFound), errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Información del parqueadero incompleta"})
		}
		return fiber.ErrInternalServerError
	}

	filename := fmt.Sprintf("ticket_parqueadero_%s.pdf", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
