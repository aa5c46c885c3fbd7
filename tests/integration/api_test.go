package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/sigep-parking/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/mocks"
	"github.com/seu-repo/sigep-parking/internal/service/auth"
	"github.com/seu-repo/sigep-parking/internal/service/parking"
)

// TestAPI_HealthCheck tests the health endpoint
func TestAPI_HealthCheck(t *testing.T) {
	app := fiber.New()

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", result["status"])
	}
}

// TestAPI_AuthFlow tests registration and login against the real auth service
func TestAPI_AuthFlow(t *testing.T) {
	app := setupTestApp(t)

	// Test registration
	t.Run("Register", func(t *testing.T) {
		payload := map[string]interface{}{
			"documento": "1012345678",
			"nombres":   "Carlos",
			"apellidos": "Mendoza",
			"email":     "carlos@example.com",
			"password":  "password123",
		}

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", resp.StatusCode)
		}
	})

	// Duplicate registration
	t.Run("RegisterDuplicate", func(t *testing.T) {
		payload := map[string]interface{}{
			"documento": "1012345678",
			"email":     "carlos@example.com",
			"password":  "password123",
		}

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", resp.StatusCode)
		}

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)

		if result["status"] != "existente" {
			t.Errorf("Expected status 'existente', got '%v'", result["status"])
		}
	})

	// Test login
	t.Run("Login", func(t *testing.T) {
		payload := map[string]interface{}{
			"email":    "carlos@example.com",
			"password": "password123",
		}

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		var result map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if extractAccessToken(result) == "" {
			t.Error("Expected accessToken in response")
		}
	})

	// Test invalid login
	t.Run("InvalidLogin", func(t *testing.T) {
		payload := map[string]interface{}{
			"email":    "carlos@example.com",
			"password": "wrongpassword",
		}

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", resp.StatusCode)
		}
	})
}

// TestAPI_ParkingFlow covers the gate round trip: enter, list, refuse the
// duplicate, exit, and verify the module is free again.
func TestAPI_ParkingFlow(t *testing.T) {
	app := setupTestApp(t)
	token := getAuthToken(t, app)

	enterBody := map[string]interface{}{
		"moduloId":       "mod-1",
		"placa":          "ABC123",
		"vehiculoTipoId": "vt-car",
		"tarifaId":       "rate-hour",
	}

	t.Run("Enter", func(t *testing.T) {
		body, _ := json.Marshal(enterBody)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parqueo/ingresar", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)

		if result["status"] != "success" {
			t.Errorf("Expected status 'success', got '%v'", result["status"])
		}
	})

	t.Run("EnterWithoutToken", func(t *testing.T) {
		body, _ := json.Marshal(enterBody)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parqueo/ingresar", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", resp.StatusCode)
		}
	})

	t.Run("DuplicateEntryRefused", func(t *testing.T) {
		dup := map[string]interface{}{
			"moduloId":       "mod-2",
			"placa":          "ABC123",
			"vehiculoTipoId": "vt-car",
			"tarifaId":       "rate-hour",
		}

		body, _ := json.Marshal(dup)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parqueo/ingresar", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)

		if result["status"] != "warning" {
			t.Errorf("Expected status 'warning', got '%v'", result["status"])
		}
	})

	t.Run("ActiveSessions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sede/sede-1/parqueos-activos", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)

		rows, ok := result["data"].([]interface{})
		if !ok {
			t.Fatalf("Expected data array, got %T", result["data"])
		}

		if len(rows) != 1 {
			t.Errorf("Expected 1 active session, got %d", len(rows))
		}
	})

	t.Run("Exit", func(t *testing.T) {
		payload := map[string]interface{}{
			"placa":           "ABC123",
			"totalPagado":     "3000",
			"metodoPagoId":    "pm-cash",
			"esArrendamiento": false,
		}

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parqueo/vehiculo/retirar", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)

		if result["status"] != "success" {
			t.Errorf("Expected status 'success', got '%v'", result["status"])
		}
	})

	t.Run("ReentryAfterExit", func(t *testing.T) {
		body, _ := json.Marshal(enterBody)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parqueo/ingresar", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)

		if result["status"] != "success" {
			t.Errorf("Expected status 'success', got '%v'", result["status"])
		}
	})
}

// TestAPI_UserManagement covers the role-gated user administration routes and
// token revocation on logout and deactivation.
func TestAPI_UserManagement(t *testing.T) {
	app := setupTestApp(t)
	operatorToken := getAuthToken(t, app)
	adminToken := registerAndLogin(t, app, "900333444", "admin@example.com", "admin")

	t.Run("OperatorForbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/usuario/activar-desactivar/900333444", nil)
		req.Header.Set("Authorization", "Bearer "+operatorToken)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", resp.StatusCode)
		}
	})

	t.Run("AdminAssignsRole", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"rol": "admin"})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/usuario/900111222/rol", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+adminToken)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)

		if result["status"] != "success" {
			t.Errorf("Expected status 'success', got '%v'", result["status"])
		}
	})

	t.Run("DeactivationRevokesToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/usuario/activar-desactivar/900111222", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		// The deactivated user's outstanding token no longer authenticates.
		req = httptest.NewRequest(http.MethodGet, "/api/v1/sede/sede-1/parqueos-activos", nil)
		req.Header.Set("Authorization", "Bearer "+operatorToken)

		resp, err = app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected status 401 after deactivation, got %d", resp.StatusCode)
		}
	})

	t.Run("LogoutRevokesToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		req = httptest.NewRequest(http.MethodGet, "/api/v1/sede/sede-1/parqueos-activos", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		resp, err = app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected status 401 after logout, got %d", resp.StatusCode)
		}
	})
}

// setupTestApp wires the real handlers and services over in-memory stores, so
// the full route, middleware and envelope behavior is exercised without
// Postgres.
func setupTestApp(t *testing.T) *fiber.App {
	logger, _ := zap.NewDevelopment()

	// In-memory user store
	usersByID := map[string]*domain.User{}
	usersByEmail := map[string]*domain.User{}
	usersByDocument := map[string]*domain.User{}
	userRepo := &mocks.MockUserRepository{
		SaveFunc: func(ctx context.Context, user *domain.User) error {
			// Store a snapshot so later mutations of the caller's struct
			// (e.g. the handler blanking the password) don't alter the store.
			u := *user
			usersByID[u.ID] = &u
			usersByEmail[u.Email] = &u
			usersByDocument[u.Document] = &u
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return usersByID[id], nil
		},
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return usersByEmail[email], nil
		},
		FindByDocumentFunc: func(ctx context.Context, document string) (*domain.User, error) {
			return usersByDocument[document], nil
		},
	}

	authService := auth.NewService(userRepo, mocks.NewMockCache(), "integration-test-secret", logger)
	authHandler := handlers.NewAuthHandler(authService, logger)

	// In-memory vehicles and sessions
	vehiclesByID := map[string]*domain.Vehicle{}
	vehiclesByPlate := map[string]*domain.Vehicle{}
	var sessions []*domain.ParkingSession

	modules := map[string]*domain.ParkingModule{
		"mod-1": {ID: "mod-1", Name: "A-01", SiteID: "sede-1", Enabled: true},
		"mod-2": {ID: "mod-2", Name: "A-02", SiteID: "sede-1", Enabled: true},
	}

	vehicleRepo := &mocks.MockVehicleRepository{
		SaveFunc: func(ctx context.Context, v *domain.Vehicle) error {
			vehiclesByID[v.ID] = v
			vehiclesByPlate[v.Plate] = v
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Vehicle, error) {
			return vehiclesByID[id], nil
		},
		FindByPlateFunc: func(ctx context.Context, plate string) (*domain.Vehicle, error) {
			return vehiclesByPlate[plate], nil
		},
	}

	sessionRepo := &mocks.MockSessionRepository{
		SaveFunc: func(ctx context.Context, s *domain.ParkingSession) error {
			sessions = append(sessions, s)
			return nil
		},
		FindOpenByVehicleIDFunc: func(ctx context.Context, vehicleID string) (*domain.ParkingSession, error) {
			for _, s := range sessions {
				if s.VehicleID == vehicleID && s.Open() {
					return s, nil
				}
			}
			return nil, nil
		},
		FindOpenByModuleIDFunc: func(ctx context.Context, moduleID string) (*domain.ParkingSession, error) {
			for _, s := range sessions {
				if s.ModuleID == moduleID && s.Open() {
					return s, nil
				}
			}
			return nil, nil
		},
		FindOpenBySiteIDFunc: func(ctx context.Context, siteID string) ([]domain.ParkingSession, error) {
			var out []domain.ParkingSession
			for _, s := range sessions {
				if !s.Open() {
					continue
				}
				if m := modules[s.ModuleID]; m != nil && m.SiteID == siteID {
					out = append(out, *s)
				}
			}
			return out, nil
		},
	}

	moduleRepo := &mocks.MockModuleRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ParkingModule, error) {
			return modules[id], nil
		},
	}

	rateRepo := &mocks.MockRateRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Rate, error) {
			if id != "rate-hour" {
				return nil, nil
			}
			return &domain.Rate{
				ID:         "rate-hour",
				Name:       "Hora carro",
				Cost:       decimal.NewFromInt(3000),
				RateTypeID: "rt-hour",
			}, nil
		},
	}

	vehicleTypeRepo := &mocks.MockVehicleTypeRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.VehicleType, error) {
			return &domain.VehicleType{ID: "vt-car", Name: "Carro"}, nil
		},
	}

	methodRepo := &mocks.MockPaymentMethodRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.PaymentMethod, error) {
			return &domain.PaymentMethod{ID: "pm-cash", Name: "Efectivo", Card: false}, nil
		},
	}

	parkingService := parking.NewService(
		vehicleRepo, sessionRepo, &mocks.MockLeaseRepository{}, moduleRepo,
		rateRepo, &mocks.MockRateTypeRepository{}, vehicleTypeRepo, methodRepo,
		&mocks.MockPaymentGateway{}, mocks.NewMockMessageQueue(), logger,
	)
	parkingHandler := handlers.NewParkingHandler(parkingService, nil, logger)

	app := fiber.New()

	api := app.Group("/api/v1")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.AuthRequired(authService))

	staff := []domain.UserRole{domain.UserRoleOwner, domain.UserRoleAdmin}
	manage := middleware.RequireRoles(staff...)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Put("/usuario/activar-desactivar/:documento", manage, authHandler.ToggleActive)
	protected.Put("/usuario/:documento/rol", manage, authHandler.SetRole)
	protected.Post("/parqueo/ingresar", parkingHandler.Enter)
	protected.Post("/parqueo/vehiculo/retirar", parkingHandler.Exit)
	protected.Get("/sede/:sede_id/parqueos-activos", parkingHandler.ActiveSessions)

	return app
}

// getAuthToken registers a gate operator and logs in
func getAuthToken(t *testing.T, app *fiber.App) string {
	register := map[string]interface{}{
		"documento": "900111222",
		"nombres":   "Operario",
		"apellidos": "De Prueba",
		"email":     "operario@example.com",
		"password":  "password123",
	}

	body, _ := json.Marshal(register)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if _, err := app.Test(req); err != nil {
		t.Fatalf("Failed to register test user: %v", err)
	}

	login := map[string]interface{}{
		"email":    "operario@example.com",
		"password": "password123",
	}

	body, _ = json.Marshal(login)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to get auth token: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	token := extractAccessToken(result)
	if token == "" {
		t.Fatal("Login response did not contain an access token")
	}

	return token
}

// registerAndLogin creates a user with the given role and returns its access
// token.
func registerAndLogin(t *testing.T, app *fiber.App, document, email, role string) string {
	register := map[string]interface{}{
		"documento": document,
		"nombres":   "Usuario",
		"apellidos": "De Prueba",
		"email":     email,
		"password":  "password123",
		"rol":       role,
	}

	body, _ := json.Marshal(register)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if _, err := app.Test(req); err != nil {
		t.Fatalf("Failed to register test user: %v", err)
	}

	login := map[string]interface{}{
		"email":    email,
		"password": "password123",
	}

	body, _ = json.Marshal(login)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to get auth token: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	token := extractAccessToken(result)
	if token == "" {
		t.Fatal("Login response did not contain an access token")
	}

	return token
}

func extractAccessToken(result map[string]interface{}) string {
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		return ""
	}
	tokens, ok := data["tokens"].(map[string]interface{})
	if !ok {
		return ""
	}
	token, _ := tokens["accessToken"].(string)
	return token
}
