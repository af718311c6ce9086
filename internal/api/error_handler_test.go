package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ebank/backoffice/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, `{"error":"invalid token"}`},
		{"invalid old password", domain.ErrInvalidOldPassword, http.StatusBadRequest, `{"error":"invalid old password"}`},
		{"password too long", fmt.Errorf("change password: %w", domain.ErrPasswordTooLong), http.StatusBadRequest, `{"error":"password too long"}`},
		{"invalid rib", domain.ErrInvalidRIB, http.StatusBadRequest, `{"error":"rib is required"}`},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, `{"error":"forbidden"}`},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, `{"error":"invalid payload"}`},
		{"internal", fmt.Errorf("login: %w: %v", domain.ErrInternal, errors.New("signing failed")), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"unknown", errors.New("mongo: connection reset"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs strings.Builder
			h := NewHTTPErrorHandler(zerolog.New(&logs))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Fatalf("unexpected body %s", got)
			}
			if strings.Contains(rec.Body.String(), "signing failed") || strings.Contains(rec.Body.String(), "mongo") {
				t.Fatalf("internal cause leaked: %s", rec.Body.String())
			}
			if tt.wantCode == http.StatusInternalServerError && !strings.Contains(logs.String(), "unhandled error") {
				t.Fatalf("expected unexpected error to be logged, got %q", logs.String())
			}
		})
	}
}
