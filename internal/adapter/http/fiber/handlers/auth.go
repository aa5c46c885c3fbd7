package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

type AuthHandler struct {
	service ports.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service ports.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Document string `json:"documento"`
	Names    string `json:"nombres"`
	Surnames string `json:"apellidos"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud invalido"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Email y password son requeridos"})
	}

	token, refreshToken, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Credenciales invalidas"})
	}

	user, _ := h.service.ValidateToken(c.Context(), token)

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"tokens": fiber.Map{
				"accessToken":  token,
				"refreshToken": refreshToken,
			},
			"user": user,
		},
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud invalido"})
	}

	if req.Document == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Documento, email y password son requeridos"})
	}

	user := domain.User{
		Document: req.Document,
		Names:    req.Names,
		Surnames: req.Surnames,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.UserRole(req.Role),
	}

	if err := h.service.Register(c.Context(), &user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateDocument) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "existente", "message": "El usuario ya se encuentra registrado"})
		}
		return fiber.ErrInternalServerError
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Usuario creado",
		"data":    user,
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud invalido"})
	}

	token, err := h.service.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Token invalido o expirado"})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"accessToken":  token,
			"refreshToken": req.RefreshToken,
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "No autenticado"})
	}

	if err := h.service.Logout(c.Context(), userID); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Sesión cerrada"})
}

func (h *AuthHandler) ToggleActive(c *fiber.Ctx) error {
	user, err := h.service.ToggleActive(c.Context(), c.Params("documento"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Usuario no encontrado"})
		}
		h.log.Error("toggle user active failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}

	msg := "Usuario desactivado"
	if user.Active {
		msg = "Usuario activado"
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": msg,
		"data":    fiber.Map{"documento": user.Document, "activo": user.Active},
	})
}

type SetRoleRequest struct {
	Role string `json:"rol"`
}

func (h *AuthHandler) SetRole(c *fiber.Ctx) error {
	var req SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cuerpo de la solicitud invalido"})
	}

	role := domain.UserRole(req.Role)
	switch role {
	case domain.UserRoleOwner, domain.UserRoleAdmin, domain.UserRoleOperator:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Rol desconocido"})
	}

	user, err := h.service.SetRole(c.Context(), c.Params("documento"), role)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "failure", "message": "Usuario no encontrado"})
		}
		h.log.Error("set user role failed", zap.Error(err))
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Rol actualizado",
		"data":    fiber.Map{"documento": user.Document, "rol": user.Role},
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := c.Locals("user")
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "No autenticado"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": user})
}
