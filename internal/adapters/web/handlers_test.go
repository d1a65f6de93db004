package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bodyshop-manager/internal/adapters/web"
	"bodyshop-manager/internal/app"
	"bodyshop-manager/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// stubService embeds the interface so each test overrides only the methods
// it exercises; calling anything else panics loudly.
type stubService struct {
	app.ApplicationService

	authenticate func(email, password string) (*app.UserResult, error)
	getUser      func(userID string) (*app.UserResult, error)
	getOrder     func(userID, orderID string) (*app.OrderResult, error)
	createOrder  func(userID string, req app.CreateOrderRequest) (*app.OrderResult, error)
	rollup       func(userID string, filter core.RollupFilter) (*core.RollupReport, error)
}

func (s *stubService) AuthenticateUser(_ context.Context, email, password string) (*app.UserResult, error) {
	return s.authenticate(email, password)
}

func (s *stubService) GetUser(_ context.Context, userID string) (*app.UserResult, error) {
	return s.getUser(userID)
}

func (s *stubService) GetOrder(_ context.Context, userID, orderID string) (*app.OrderResult, error) {
	return s.getOrder(userID, orderID)
}

func (s *stubService) CreateOrder(_ context.Context, userID string, req app.CreateOrderRequest) (*app.OrderResult, error) {
	return s.createOrder(userID, req)
}

func (s *stubService) FinancialRollup(_ context.Context, userID string, filter core.RollupFilter) (*core.RollupReport, error) {
	return s.rollup(userID, filter)
}

const testSecret = "test-secret"

func newTestServer(svc app.ApplicationService) *httptest.Server {
	return httptest.NewServer(web.NewHandler(svc, "", testSecret, zerolog.Nop()))
}

// loginCookie logs in through the real login handler and returns the auth cookie.
func loginCookie(t *testing.T, srv *httptest.Server) *http.Cookie {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json",
		strings.NewReader(`{"email":"owner@shop.local","password":"s3cret"}`))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from login, got %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatal("no auth_token cookie set by login")
	return nil
}

func authedStub() *stubService {
	return &stubService{
		authenticate: func(email, password string) (*app.UserResult, error) {
			if email == "owner@shop.local" && password == "s3cret" {
				return &app.UserResult{ID: "u1", Email: email, Name: "Owner"}, nil
			}
			return nil, app.ErrInvalidCredentials
		},
	}
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(&stubService{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("expected X-Request-ID header on every response")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(&stubService{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without cookie, got %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(authedStub())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json",
		strings.NewReader(`{"email":"owner@shop.local","password":"wrong"}`))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
}

func TestLoginThenMe(t *testing.T) {
	stub := authedStub()
	stub.getUser = func(userID string) (*app.UserResult, error) {
		if userID != "u1" {
			t.Errorf("expected user id from JWT, got %q", userID)
		}
		return &app.UserResult{ID: "u1", Email: "owner@shop.local", Name: "Owner"}, nil
	}
	srv := newTestServer(stub)
	defer srv.Close()

	cookie := loginCookie(t, srv)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGetOrder_MissingIs404(t *testing.T) {
	stub := authedStub()
	stub.getOrder = func(userID, orderID string) (*app.OrderResult, error) {
		return nil, nil
	}
	srv := newTestServer(stub)
	defer srv.Close()

	cookie := loginCookie(t, srv)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/orders/OS-2026-0042", nil)
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing order, got %d", resp.StatusCode)
	}
}

func TestCreateOrderReturns201(t *testing.T) {
	stub := authedStub()
	stub.createOrder = func(userID string, req app.CreateOrderRequest) (*app.OrderResult, error) {
		if !req.ServicesTotal.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected services total 500, got %s", req.ServicesTotal)
		}
		o := core.NewServiceOrder("OS-2026-0001", req.EntryDate, "", req.Client, req.Vehicle, "", "", req.ServicesTotal)
		return &app.OrderResult{Order: o}, nil
	}
	srv := newTestServer(stub)
	defer srv.Close()

	cookie := loginCookie(t, srv)
	body := `{"entry_date":"2026-03-10","client":{"name":"Carlos"},"vehicle":{"plate":"ABC1D23"},"services_total":"500"}`
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestRollupRejectsBadStatusClass(t *testing.T) {
	stub := authedStub()
	stub.rollup = func(userID string, filter core.RollupFilter) (*core.RollupReport, error) {
		report := core.Rollup(nil, filter)
		return &report, nil
	}
	srv := newTestServer(stub)
	defer srv.Close()

	cookie := loginCookie(t, srv)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/reports/rollup?status=bogus", nil)
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad status class, got %d", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/reports/rollup?status=open&from=2026-01-01&to=2026-12-31", nil)
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for valid filter, got %d", resp.StatusCode)
	}
}
