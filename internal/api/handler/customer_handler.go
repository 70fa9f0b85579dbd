package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// CustomerHandler proxies the customer-management service.
type CustomerHandler struct {
	customers ports.CustomerService
}

func NewCustomerHandler(customers ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customers.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.customers.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

type createCustomerRequest struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	MobileNumber string `json:"mobileNumber" validate:"omitempty,min=10"`
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.customers.CreateCustomer(c.Request().Context(), domain.Customer{
		FullName:     req.FullName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Classification returns the customer's rate classification (e.g. SENIOR),
// which the calculator and product views use to pick rate slabs.
func (h *CustomerHandler) Classification(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	classification, err := h.customers.Classification(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"classification": classification})
}
