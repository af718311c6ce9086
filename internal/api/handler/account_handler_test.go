package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ebank/backoffice/internal/core/domain"
)

type stubAccountService struct {
	existsFn func(ctx context.Context, rib string) (bool, error)
}

func (s *stubAccountService) Exists(ctx context.Context, rib string) (bool, error) {
	return s.existsFn(ctx, rib)
}

func TestAccountHandler_Exists(t *testing.T) {
	e := echo.New()
	handler := NewAccountHandler(&stubAccountService{
		existsFn: func(ctx context.Context, rib string) (bool, error) {
			return rib == "FR7630006000011234567890189", nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/exists?rib=FR7630006000011234567890189", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Exists(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		RIB    string `json:"rib"`
		Exists bool   `json:"exists"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Exists || resp.RIB != "FR7630006000011234567890189" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAccountHandler_Exists_InvalidRIB(t *testing.T) {
	e := echo.New()
	handler := NewAccountHandler(&stubAccountService{
		existsFn: func(ctx context.Context, rib string) (bool, error) {
			return false, domain.ErrInvalidRIB
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/exists", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.Exists(c); !errors.Is(err, domain.ErrInvalidRIB) {
		t.Fatalf("expected ErrInvalidRIB, got %v", err)
	}
}

func TestAccountHandler_Exists_EchoesCheckedRIB(t *testing.T) {
	e := echo.New()
	var checked string
	handler := NewAccountHandler(&stubAccountService{
		existsFn: func(ctx context.Context, rib string) (bool, error) {
			checked = rib
			return true, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/exists?rib=%20FR76300%20", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Exists(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp accountExistsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if checked != "FR76300" || resp.RIB != checked {
		t.Fatalf("response rib %q differs from checked rib %q", resp.RIB, checked)
	}
}
