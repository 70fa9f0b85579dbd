package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/core/ports"
)

// FDAccountHandler proxies the fixed-deposit account service.
type FDAccountHandler struct {
	accounts ports.FDAccountService
}

func NewFDAccountHandler(accounts ports.FDAccountService) *FDAccountHandler {
	return &FDAccountHandler{accounts: accounts}
}

// ByCustomer lists the fixed deposits held by one customer.
func (h *FDAccountHandler) ByCustomer(c echo.Context) error {
	customerID, err := strconv.ParseInt(c.QueryParam("customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "customerId must be a positive integer")
	}

	accounts, err := h.accounts.AccountsByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

func (h *FDAccountHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	account, err := h.accounts.GetAccount(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (h *FDAccountHandler) Transactions(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	txns, err := h.accounts.Transactions(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txns)
}
