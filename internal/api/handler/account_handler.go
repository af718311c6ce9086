package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ebank/backoffice/internal/core/ports"
)

// AccountHandler serves bank-account lookups.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type accountExistsResponse struct {
	RIB    string `json:"rib"`
	Exists bool   `json:"exists"`
}

// Exists handles GET /api/accounts/exists?rib=...
//
// @Summary      Check whether a bank account exists
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        rib  query     string  true  "Bank account identifier (RIB)"
// @Success      200  {object}  accountExistsResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /accounts/exists [get]
func (h *AccountHandler) Exists(c echo.Context) error {
	rib := strings.TrimSpace(c.QueryParam("rib"))

	exists, err := h.service.Exists(c.Request().Context(), rib)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountExistsResponse{RIB: rib, Exists: exists})
}
