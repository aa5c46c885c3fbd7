package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

type CustomerHandler struct {
	service ports.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service ports.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log,
	}
}

type CustomerRequest struct {
	Document     string `json:"documento"`
	Names        string `json:"nombres"`
	Surnames     string `json:"apellidos"`
	Phone        string `json:"telefono"`
	Email        string `json:"email"`
	Address      string `json:"direccion"`
	ParkingLotID string `json:"parqueadero_id"`
	Plate        string `json:"placa"`
}

func customerPayload(c *domain.Customer) fiber.Map {
	return fiber.Map{
		"id":        c.ID,
		"documento": c.Document,
		"nombres":   c.Names,
		"apellidos": c.Surnames,
		"telefono":  c.Phone,
		"email":     c.Email,
		"direccion": c.Address,
		"activo":    c.Active,
	}
}

// Create handles POST /cliente. A duplicate document is a domain outcome the
// form shows inline, not an HTTP conflict.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	customer, err := h.service.Create(c.Context(), ports.CustomerRequest{
		Document:     req.Document,
		Names:        req.Names,
		Surnames:     req.Surnames,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		ParkingLotID: req.ParkingLotID,
		Plate:        req.Plate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateDocument) {
			return c.JSON(fiber.Map{"status": "existente", "message": "Ya existe un cliente con el documento dado."})
		}
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Cliente creado",
		"data":    customerPayload(customer),
	})
}

// Update handles PUT /cliente/:documento
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	document := c.Params("documento")

	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud inválido"})
	}

	customer, err := h.service.Update(c.Context(), document, ports.CustomerRequest{
		Document: document,
		Names:    req.Names,
		Surnames: req.Surnames,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Cliente no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Cliente actualizado",
		"data":    customerPayload(customer),
	})
}

// Delete handles DELETE /cliente/:documento
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	document := c.Params("documento")

	if err := h.service.Delete(c.Context(), document); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Cliente no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Cliente eliminado"})
}

// List handles GET /clientes
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.service.List(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	rows := make([]fiber.Map, 0, len(customers))
	for i := range customers {
		rows = append(rows, customerPayload(&customers[i]))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Consulta realizada de forma satisfactoria",
		"data":    rows,
	})
}

// ToggleActive handles PUT /cliente/activar-desactivar/:documento
func (h *CustomerHandler) ToggleActive(c *fiber.Ctx) error {
	document := c.Params("documento")

	customer, err := h.service.ToggleActive(c.Context(), document)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Cliente no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	state := "desactivado"
	if customer.Active {
		state = "activado"
	}
	return c.JSON(fiber.Map{"status": "success", "message": fmt.Sprintf("Cliente %s exitosamente", state)})
}

// FindByVehiclePlate handles GET /vehiculo/:placa/cliente
func (h *CustomerHandler) FindByVehiclePlate(c *fiber.Ctx) error {
	plate := c.Params("placa")

	customer, err := h.service.FindByVehiclePlate(c.Context(), plate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVehicleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Vehículo no encontrado"})
		case errors.Is(err, domain.ErrCustomerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Cliente no encontrado"})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"documento": customer.Document,
			"nombres":   customer.Names,
			"apellidos": customer.Surnames,
			"email":     customer.Email,
			"telefono":  customer.Phone,
			"direccion": customer.Address,
			"activo":    customer.Active,
		},
	})
}
