package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// CalculatorClient calls the FD maturity-calculator service. The interest
// formulas live entirely on the service side.
type CalculatorClient struct {
	baseURL string
	client  *http.Client
}

var _ ports.CalculatorService = (*CalculatorClient)(nil)

func NewCalculatorClient(baseURL string, client *http.Client) *CalculatorClient {
	return &CalculatorClient{baseURL: baseURL, client: client}
}

func (c *CalculatorClient) CalculateStandalone(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error) {
	var result domain.CalculationResult
	u := c.baseURL + "/api/calculator/calculate/standalone"
	if err := doJSON(ctx, c.client, http.MethodPost, u, req, &result); err != nil {
		return nil, fmt.Errorf("standalone calculation: %w", err)
	}
	return &result, nil
}

func (c *CalculatorClient) CalculateWithProduct(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error) {
	var result domain.CalculationResult
	u := c.baseURL + "/api/calculator/calculate/product-based"
	if err := doJSON(ctx, c.client, http.MethodPost, u, req, &result); err != nil {
		return nil, fmt.Errorf("product-based calculation: %w", err)
	}
	return &result, nil
}
