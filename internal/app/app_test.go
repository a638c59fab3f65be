package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/clubfinanzas/backend/internal/infrastructure/cache"
	"github.com/clubfinanzas/backend/internal/infrastructure/config"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	rootEmail    = "root@clubfinanzas.test"
	rootPassword = "super-secreto"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestApp(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := persistence.OpenSQLiteMemory()
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))
	database := persistence.NewDatabaseFromGorm(db, persistence.DriverSQLite)
	t.Cleanup(func() { _ = database.Close() })

	cfg := &config.Config{
		App: config.AppConfig{Name: "clubfinanzas", Env: "test"},
		JWT: config.JWTConfig{
			Secret:     "test-secret-with-enough-length-0123456789",
			Expiration: time.Hour,
			Issuer:     "clubfinanzas-test",
		},
		Cookie: config.CookieConfig{Path: "/", SameSite: "lax"},
		HTTP:   config.HTTPConfig{MaxBodySize: 1 << 20},
		Bootstrap: config.BootstrapConfig{
			SuperAdminEmail:    rootEmail,
			SuperAdminPassword: rootPassword,
			SuperAdminName:     "Root",
		},
	}

	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(idempotency.Close)

	a, err := New(cfg, database, Stores{
		Blacklist:   auth.NewInMemoryTokenBlacklist(),
		Idempotency: idempotency,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return &apiClient{t: t, engine: a.Engine}
}

func (c *apiClient) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	return c.send(method, path, token, body, nil)
}

func (c *apiClient) send(method, path, token string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (c *apiClient) data(env envelope, into any) {
	c.t.Helper()
	require.NoError(c.t, json.Unmarshal(env.Data, into))
}

func (c *apiClient) login(email, password string) string {
	c.t.Helper()
	w, env := c.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	c.data(env, &out)
	require.NotEmpty(c.t, out.Token)
	return out.Token
}

type idOnly struct {
	ID string `json:"id"`
}

// setupClub creates a club with an admin and returns the club id and the
// admin's token
func (c *apiClient) setupClub(rootToken, slug, adminEmail string) (string, string) {
	c.t.Helper()
	w, env := c.do(http.MethodPost, "/api/v1/super-admin/clubes", rootToken, gin.H{"nombre": "Club " + slug, "slug": slug})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	var club idOnly
	c.data(env, &club)

	w, _ = c.do(http.MethodPost, "/api/v1/super-admin/clubes/"+club.ID+"/admins", rootToken,
		gin.H{"email": adminEmail, "password": "clave-segura", "nombre": "Admin " + slug})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	return club.ID, c.login(adminEmail, "clave-segura")
}

func dec(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(fmt.Sprint(v))
	require.NoError(t, err)
	return d
}

func TestHealth(t *testing.T) {
	api := newTestApp(t)
	w, env := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLoginCookiesAndLogout(t *testing.T) {
	api := newTestApp(t)

	t.Run("wrong password", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": rootEmail, "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Credenciales inválidas", env.Error)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("super-admin cookie", func(t *testing.T) {
		w, _ := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": rootEmail, "password": rootPassword})
		require.Equal(t, http.StatusOK, w.Code)
		names := map[string]bool{}
		for _, ck := range w.Result().Cookies() {
			names[ck.Name] = true
			assert.True(t, ck.HttpOnly)
		}
		assert.True(t, names[auth.CookieSuperAdmin])
		assert.False(t, names[auth.CookieAdmin])
	})

	t.Run("club admin cookies", func(t *testing.T) {
		root := api.login(rootEmail, rootPassword)
		clubID, _ := api.setupClub(root, "club-cookies", "admin@cookies.test")

		w, _ := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "admin@cookies.test", "password": "clave-segura"})
		require.Equal(t, http.StatusOK, w.Code)
		names := map[string]bool{}
		for _, ck := range w.Result().Cookies() {
			names[ck.Name] = true
		}
		assert.True(t, names[auth.CookieAdmin])
		assert.True(t, names[auth.ClubCookieName(clubID)])
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		token := api.login(rootEmail, rootPassword)

		w, _ := api.do(http.MethodGet, "/api/v1/auth/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = api.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, env := api.do(http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "ERR_UNAUTHORIZED", env.Code)
	})

	t.Run("logout without session", func(t *testing.T) {
		w, _ := api.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCampaignAndDebtFlow(t *testing.T) {
	api := newTestApp(t)
	root := api.login(rootEmail, rootPassword)
	_, token := api.setupClub(root, "club-norte", "admin@norte.test")

	w, env := api.do(http.MethodPost, "/api/v1/miembros", token, gin.H{"nombre": "Ana Pérez"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var member idOnly
	api.data(env, &member)

	w, env = api.do(http.MethodPost, "/api/v1/colectas", token, gin.H{"nombre": "Camisetas", "objetivo": 1000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var campaign idOnly
	api.data(env, &campaign)

	for _, c := range []gin.H{
		{"miembroId": member.ID, "colectaId": campaign.ID, "monto": 400, "estado": "aportado"},
		{"miembroId": member.ID, "colectaId": campaign.ID, "monto": 100, "estado": "comprometido"},
	} {
		w, _ = api.do(http.MethodPost, "/api/v1/colectas/aportes", token, c)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w, _ = api.do(http.MethodPost, "/api/v1/gastos", token,
		gin.H{"quienPagoId": member.ID, "colectaId": campaign.ID, "concepto": "Tela", "monto": 50})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("campaign statistics", func(t *testing.T) {
		w, env := api.do(http.MethodGet, "/api/v1/colectas/"+campaign.ID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats map[string]any
		api.data(env, &stats)
		assert.True(t, dec(t, stats["totalAportado"]).Equal(decimal.NewFromInt(400)))
		assert.True(t, dec(t, stats["totalComprometido"]).Equal(decimal.NewFromInt(100)))
		assert.True(t, dec(t, stats["totalGastos"]).Equal(decimal.NewFromInt(50)))
		assert.True(t, dec(t, stats["balance"]).Equal(decimal.NewFromInt(350)))
		assert.True(t, dec(t, stats["faltante"]).Equal(decimal.NewFromInt(600)))
		assert.EqualValues(t, 40, stats["porcentaje"])
	})

	t.Run("debt payments", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/v1/deudas", token,
			gin.H{"miembroId": member.ID, "concepto": "Cuota anual", "montoOriginal": 300})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var debt idOnly
		api.data(env, &debt)
		payURL := "/api/v1/deudas/" + debt.ID + "/pago"

		w, env = api.do(http.MethodPost, payURL, token, gin.H{"monto": 100})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var result struct {
			Debt map[string]any `json:"deuda"`
		}
		api.data(env, &result)
		assert.Equal(t, "parcial_pagada", result.Debt["estado"])
		assert.True(t, dec(t, result.Debt["montoRestante"]).Equal(decimal.NewFromInt(200)))

		w, env = api.do(http.MethodPost, payURL, token, gin.H{"monto": 250})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_EXCEEDS_REMAINING", env.Code)

		w, env = api.do(http.MethodPost, payURL, token, gin.H{"monto": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION", env.Code)

		w, env = api.do(http.MethodPost, payURL, token, gin.H{"monto": 0.001})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_AMOUNT", env.Code)

		w, env = api.do(http.MethodPost, payURL, token, gin.H{"monto": 200})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		api.data(env, &result)
		assert.Equal(t, "pagada", result.Debt["estado"])
		assert.True(t, dec(t, result.Debt["montoRestante"]).IsZero())

		w, env = api.do(http.MethodPost, payURL, token, gin.H{"monto": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_EXCEEDS_REMAINING", env.Code)

		w, env = api.do(http.MethodGet, "/api/v1/deudas/"+debt.ID+"/pagos", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var payments []map[string]any
		api.data(env, &payments)
		assert.Len(t, payments, 2)
	})

	t.Run("member delete keeps ledger", func(t *testing.T) {
		w, _ := api.do(http.MethodDelete, "/api/v1/miembros/"+member.ID, token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w, env := api.do(http.MethodGet, "/api/v1/colectas/"+campaign.ID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats map[string]any
		api.data(env, &stats)
		assert.True(t, dec(t, stats["totalAportado"]).Equal(decimal.NewFromInt(400)))
	})
}

func TestPaymentIdempotencyKey(t *testing.T) {
	api := newTestApp(t)
	root := api.login(rootEmail, rootPassword)
	_, token := api.setupClub(root, "club-norte", "admin@norte.test")

	_, env := api.do(http.MethodPost, "/api/v1/miembros", token, gin.H{"nombre": "Ana"})
	var member idOnly
	api.data(env, &member)
	_, env = api.do(http.MethodPost, "/api/v1/deudas", token,
		gin.H{"miembroId": member.ID, "concepto": "Cuota", "montoOriginal": 300})
	var debt idOnly
	api.data(env, &debt)

	headers := map[string]string{"Idempotency-Key": "pago-123"}
	payURL := "/api/v1/deudas/" + debt.ID + "/pago"

	w, _ := api.send(http.MethodPost, payURL, token, gin.H{"monto": 100}, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = api.send(http.MethodPost, payURL, token, gin.H{"monto": 100}, headers)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ERR_CONFLICT", env.Code)

	w, env = api.do(http.MethodGet, "/api/v1/deudas/"+debt.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	api.data(env, &got)
	assert.True(t, dec(t, got["montoPagado"]).Equal(decimal.NewFromInt(100)))
}

func TestTenantIsolation(t *testing.T) {
	api := newTestApp(t)
	root := api.login(rootEmail, rootPassword)
	_, northToken := api.setupClub(root, "club-norte", "admin@norte.test")
	_, southToken := api.setupClub(root, "club-sur", "admin@sur.test")

	w, env := api.do(http.MethodPost, "/api/v1/miembros", northToken, gin.H{"nombre": "Socio Norte"})
	require.Equal(t, http.StatusCreated, w.Code)
	var member idOnly
	api.data(env, &member)

	w, _ = api.do(http.MethodGet, "/api/v1/miembros/"+member.ID, southToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(http.MethodDelete, "/api/v1/miembros/"+member.ID, southToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = api.do(http.MethodGet, "/api/v1/miembros", southToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	api.data(env, &page)
	assert.Zero(t, page.Total)
}

func TestAccessControl(t *testing.T) {
	api := newTestApp(t)
	root := api.login(rootEmail, rootPassword)
	_, adminToken := api.setupClub(root, "club-norte", "admin@norte.test")

	w, _ := api.do(http.MethodPost, "/api/v1/usuarios", adminToken,
		gin.H{"email": "tesorero@norte.test", "password": "clave-segura", "nombre": "Tesorero", "rol": "tesorero"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	treasurerToken := api.login("tesorero@norte.test", "clave-segura")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no session", http.MethodGet, "/api/v1/miembros", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/miembros", "not-a-jwt", http.StatusUnauthorized},
		{"treasurer reads finance", http.MethodGet, "/api/v1/miembros", treasurerToken, http.StatusOK},
		{"treasurer cannot manage users", http.MethodGet, "/api/v1/usuarios", treasurerToken, http.StatusForbidden},
		{"treasurer cannot read audit", http.MethodGet, "/api/v1/auditoria", treasurerToken, http.StatusForbidden},
		{"admin reads audit", http.MethodGet, "/api/v1/auditoria", adminToken, http.StatusOK},
		{"club admin is not super-admin", http.MethodGet, "/api/v1/super-admin/clubes", adminToken, http.StatusForbidden},
		{"super-admin stats", http.MethodGet, "/api/v1/super-admin/estadisticas", root, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := api.do(tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestPublicPage(t *testing.T) {
	api := newTestApp(t)
	root := api.login(rootEmail, rootPassword)
	_, token := api.setupClub(root, "club-norte", "admin@norte.test")

	w, _ := api.do(http.MethodGet, "/api/v1/public/clubes/club-norte", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodGet, "/api/v1/public/clubes/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(http.MethodGet, "/api/v1/public/clubes/club-norte/resumen", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(http.MethodPut, "/api/v1/configuracion", token, gin.H{"transparenciaPublica": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = api.do(http.MethodGet, "/api/v1/public/clubes/club-norte/resumen", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := api.do(http.MethodGet, "/api/v1/public/clubes/club-norte/colectas", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var campaigns []map[string]any
	api.data(env, &campaigns)
	assert.Empty(t, campaigns)
}

func TestSuperAdminClubs(t *testing.T) {
	api := newTestApp(t)
	root := api.login(rootEmail, rootPassword)
	api.setupClub(root, "club-norte", "admin@norte.test")

	w, env := api.do(http.MethodPost, "/api/v1/super-admin/clubes", root, gin.H{"nombre": "Otro", "slug": "club-norte"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ERR_ALREADY_EXISTS", env.Code)

	w, env = api.do(http.MethodPost, "/api/v1/super-admin/clubes", root, gin.H{"nombre": "Otro", "slug": "Mal Slug"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_VALIDATION", env.Code)

	w, env = api.do(http.MethodGet, "/api/v1/super-admin/estadisticas", root, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]any
	api.data(env, &stats)
	assert.EqualValues(t, 1, stats["clubes"])
}
