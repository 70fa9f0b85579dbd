package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// FDAccountClient is the fixed-deposit account-service REST client.
type FDAccountClient struct {
	baseURL string
	client  *http.Client
}

var _ ports.FDAccountService = (*FDAccountClient)(nil)

func NewFDAccountClient(baseURL string, client *http.Client) *FDAccountClient {
	return &FDAccountClient{baseURL: baseURL, client: client}
}

func (c *FDAccountClient) AccountsByCustomer(ctx context.Context, customerID int64) ([]domain.FDAccount, error) {
	var accounts []domain.FDAccount
	u := fmt.Sprintf("%s/api/accounts/customer/%d", c.baseURL, customerID)
	if err := doJSON(ctx, c.client, http.MethodGet, u, nil, &accounts); err != nil {
		return nil, fmt.Errorf("accounts for customer %d: %w", customerID, err)
	}
	return accounts, nil
}

func (c *FDAccountClient) GetAccount(ctx context.Context, id int64) (*domain.FDAccount, error) {
	var account domain.FDAccount
	u := fmt.Sprintf("%s/api/accounts/%d", c.baseURL, id)
	if err := doJSON(ctx, c.client, http.MethodGet, u, nil, &account); err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return &account, nil
}

func (c *FDAccountClient) Transactions(ctx context.Context, accountID int64) ([]domain.AccountTransaction, error) {
	var txns []domain.AccountTransaction
	u := fmt.Sprintf("%s/api/accounts/%d/transactions", c.baseURL, accountID)
	if err := doJSON(ctx, c.client, http.MethodGet, u, nil, &txns); err != nil {
		return nil, fmt.Errorf("transactions for account %d: %w", accountID, err)
	}
	return txns, nil
}
