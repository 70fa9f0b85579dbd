package ports

import (
	"context"

	"github.com/credexa/session-gateway/internal/core/domain"
)

// ProductService is the product-catalogue REST API.
type ProductService interface {
	ListProducts(ctx context.Context, page, size int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ApplicableRate(ctx context.Context, productID int64, amount float64, termMonths int, classification string) (*domain.InterestRate, error)
}

// CalculatorService is the FD maturity-calculator REST API.
type CalculatorService interface {
	CalculateStandalone(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error)
	CalculateWithProduct(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error)
}

// CustomerService is the customer-management REST API.
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	Classification(ctx context.Context, id int64) (string, error)
}

// FDAccountService is the fixed-deposit account REST API.
type FDAccountService interface {
	AccountsByCustomer(ctx context.Context, customerID int64) ([]domain.FDAccount, error)
	GetAccount(ctx context.Context, id int64) (*domain.FDAccount, error)
	Transactions(ctx context.Context, accountID int64) ([]domain.AccountTransaction, error)
}
