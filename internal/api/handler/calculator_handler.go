package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// CalculatorHandler proxies the maturity calculator. Interest math stays in
// the calculator service; the gateway only validates the request shape.
type CalculatorHandler struct {
	calc ports.CalculatorService
}

func NewCalculatorHandler(calc ports.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calc: calc}
}

// Standalone projects maturity from explicit principal, rate and tenure.
func (h *CalculatorHandler) Standalone(c echo.Context) error {
	var req domain.CalculationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.calc.CalculateStandalone(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Quick is the dashboard's one-click projection: amount and months in, a
// standard compound quarterly calculation out.
func (h *CalculatorHandler) Quick(c echo.Context) error {
	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil || amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be a positive number")
	}
	rate, err := strconv.ParseFloat(c.QueryParam("rate"), 64)
	if err != nil || rate <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "rate must be a positive number")
	}
	months, err := strconv.Atoi(c.QueryParam("months"))
	if err != nil || months <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "months must be a positive integer")
	}

	result, err := h.calc.CalculateStandalone(c.Request().Context(), domain.CalculationRequest{
		PrincipalAmount:      amount,
		InterestRate:         rate,
		Tenure:               months,
		TenureUnit:           "MONTHS",
		CalculationType:      "COMPOUND",
		CompoundingFrequency: "QUARTERLY",
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ProductBased projects maturity using a product's configured rate slabs.
func (h *CalculatorHandler) ProductBased(c echo.Context) error {
	var req domain.CalculationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProductID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "productId is required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.calc.CalculateWithProduct(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
