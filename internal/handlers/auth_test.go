package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/frete99/frete99-backend/internal/handlers"
	"github.com/frete99/frete99-backend/internal/middleware"
	"github.com/frete99/frete99-backend/internal/models"
	"github.com/frete99/frete99-backend/internal/services"
	"github.com/frete99/frete99-backend/internal/store"
	"github.com/frete99/frete99-backend/pkg/utils"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	st := store.New(log)
	tokens := utils.NewTokenManager("test-secret")
	hub := services.NewHub(log)
	go hub.Run()

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/register", handlers.Register(st, tokens))
		api.POST("/login", handlers.Login(st, tokens))

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(tokens))
		{
			protected.GET("/me", handlers.GetProfile(st))
			protected.GET("/drivers", handlers.ListDrivers(st))

			driver := protected.Group("/driver")
			driver.Use(middleware.RequireRole(models.RoleDriver))
			{
				driver.POST("/status", handlers.UpdateDriverAvailability(st))
			}

			rides := protected.Group("/rides")
			{
				rides.POST("", middleware.RequireRole(models.RoleClient), handlers.CreateRide(st, hub))
				rides.GET("/open", middleware.RequireRole(models.RoleDriver), handlers.GetOpenRides(st))
				rides.GET("/my", handlers.GetMyRides(st))
				rides.POST("/:id/claim", middleware.RequireRole(models.RoleDriver), handlers.ClaimRide(st, hub))
				rides.PATCH("/:id/status", middleware.RequireRole(models.RoleDriver), handlers.UpdateRideStatus(st, hub))
				rides.POST("/:id/rate", handlers.RateRide(st))
			}
		}
	}
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, r *gin.Engine, body map[string]any) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register", "", body)
	if w.Code != 201 {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("register response has no token")
	}
	return token
}

func clientBody() map[string]any {
	return map[string]any{
		"name":     "João Cliente",
		"email":    "cliente@teste.com",
		"password": "senha123",
		"role":     "CLIENT",
		"phone":    "69999990000",
	}
}

func driverBody() map[string]any {
	return map[string]any{
		"name":        "Sr. Motorista",
		"email":       "motorista@teste.com",
		"password":    "senha123",
		"role":        "DRIVER",
		"phone":       "69999991111",
		"vehicleType": "CARRO",
		"carModel":    "Fiorino 2020",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", "", clientBody())
	if w.Code != 201 {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	resp := decode(t, w)
	if resp["token"] == "" {
		t.Error("no token in response")
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatal("no user in response")
	}
	if user["email"] != "cliente@teste.com" {
		t.Errorf("email = %v", user["email"])
	}
	if _, exposed := user["passwordHash"]; exposed {
		t.Error("password hash in response")
	}

	// Duplicate registration conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/register", "", clientBody())
	if w.Code != 409 {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	body := clientBody()
	body["name"] = "ab"
	w := doJSON(t, r, http.MethodPost, "/api/register", "", body)
	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, clientBody())

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]any{
		"email":    "cliente@teste.com",
		"password": "senha123",
	})
	if w.Code != 200 {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["token"] == "" {
		t.Error("no token in login response")
	}

	w = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]any{
		"email":    "cliente@teste.com",
		"password": "senhaErrada",
	})
	if w.Code != 401 {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}
}

func TestMeEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerUser(t, r, clientBody())

	w := doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	if w.Code != 200 {
		t.Fatalf("me status = %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["email"] != "cliente@teste.com" {
		t.Error("wrong profile returned")
	}

	w = doJSON(t, r, http.MethodGet, "/api/me", "", nil)
	if w.Code != 401 {
		t.Errorf("unauthenticated me status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/me", "token-invalido", nil)
	if w.Code != 401 {
		t.Errorf("invalid token me status = %d, want 401", w.Code)
	}
}

func TestRoleGuards(t *testing.T) {
	r, _ := newTestRouter(t)
	clientToken := registerUser(t, r, clientBody())
	driverToken := registerUser(t, r, driverBody())

	w := doJSON(t, r, http.MethodGet, "/api/rides/open", clientToken, nil)
	if w.Code != 403 {
		t.Errorf("client listing open rides: status = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/rides", driverToken, map[string]any{
		"from": "A", "to": "B", "vehicleType": "CARRO",
	})
	if w.Code != 403 {
		t.Errorf("driver creating ride: status = %d, want 403", w.Code)
	}
}
