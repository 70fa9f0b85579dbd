package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// ProductClient is the product-catalogue REST client. It shares the
// authenticated transport, so a 401 from the product service ends the session
// globally.
type ProductClient struct {
	baseURL string
	client  *http.Client
}

var _ ports.ProductService = (*ProductClient)(nil)

func NewProductClient(baseURL string, client *http.Client) *ProductClient {
	return &ProductClient{baseURL: baseURL, client: client}
}

func (c *ProductClient) ListProducts(ctx context.Context, page, size int) ([]domain.Product, error) {
	if size <= 0 {
		size = 10
	}
	var products []domain.Product
	u := fmt.Sprintf("%s/api/products?page=%d&size=%d", c.baseURL, page, size)
	if err := doJSON(ctx, c.client, http.MethodGet, u, nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *ProductClient) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	u := fmt.Sprintf("%s/api/products/%d", c.baseURL, id)
	if err := doJSON(ctx, c.client, http.MethodGet, u, nil, &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

func (c *ProductClient) ApplicableRate(ctx context.Context, productID int64, amount float64, termMonths int, classification string) (*domain.InterestRate, error) {
	params := url.Values{}
	params.Set("amount", fmt.Sprintf("%g", amount))
	params.Set("termMonths", fmt.Sprintf("%d", termMonths))
	if classification != "" {
		params.Set("classification", classification)
	}

	var rate domain.InterestRate
	u := fmt.Sprintf("%s/api/products/%d/interest-rates/applicable?%s", c.baseURL, productID, params.Encode())
	if err := doJSON(ctx, c.client, http.MethodGet, u, nil, &rate); err != nil {
		return nil, fmt.Errorf("applicable rate for product %d: %w", productID, err)
	}
	return &rate, nil
}
