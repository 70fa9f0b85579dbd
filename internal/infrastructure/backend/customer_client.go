package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// CustomerClient is the customer-service REST client.
type CustomerClient struct {
	baseURL string
	client  *http.Client
}

var _ ports.CustomerService = (*CustomerClient)(nil)

func NewCustomerClient(baseURL string, client *http.Client) *CustomerClient {
	return &CustomerClient{baseURL: baseURL, client: client}
}

func (c *CustomerClient) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := doJSON(ctx, c.client, http.MethodGet, c.baseURL+"/api/customer/customers", nil, &customers); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (c *CustomerClient) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	u := fmt.Sprintf("%s/api/customer/customers/%d", c.baseURL, id)
	if err := doJSON(ctx, c.client, http.MethodGet, u, nil, &customer); err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	return &customer, nil
}

func (c *CustomerClient) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	var created domain.Customer
	if err := doJSON(ctx, c.client, http.MethodPost, c.baseURL+"/api/customer/customers", customer, &created); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &created, nil
}

func (c *CustomerClient) Classification(ctx context.Context, id int64) (string, error) {
	var resp struct {
		Classification string `json:"classification"`
	}
	u := fmt.Sprintf("%s/api/customer/customers/%d/classification", c.baseURL, id)
	if err := doJSON(ctx, c.client, http.MethodGet, u, nil, &resp); err != nil {
		return "", fmt.Errorf("customer %d classification: %w", id, err)
	}
	return resp.Classification, nil
}
