package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/core/ports"
)

// ProductHandler proxies the FD product catalogue.
type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns a page of products. Defaults to the first page of ten.
func (h *ProductHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 0)
	size := queryInt(c, "size", 10)

	products, err := h.products.ListProducts(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.products.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// ApplicableRate looks up the rate slab matching an amount, a term and an
// optional customer classification.
func (h *ProductHandler) ApplicableRate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil || amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be a positive number")
	}
	termMonths := queryInt(c, "termMonths", 0)
	if termMonths <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "termMonths must be a positive integer")
	}

	rate, err := h.products.ApplicableRate(c.Request().Context(), id, amount, termMonths, c.QueryParam("classification"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rate)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
