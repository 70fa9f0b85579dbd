package domain

import "time"

// Product is a fixed-deposit product offered by the product service.
type Product struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	MinAmount     float64 `json:"minAmount"`
	MaxAmount     float64 `json:"maxAmount"`
	MinTermMonths int     `json:"minTermMonths"`
	MaxTermMonths int     `json:"maxTermMonths"`
	Active        bool    `json:"active"`
}

// InterestRate is a product rate slab.
type InterestRate struct {
	ProductID      int64   `json:"productId"`
	Rate           float64 `json:"rate"`
	MinAmount      float64 `json:"minAmount"`
	TermMonths     int     `json:"termMonths"`
	Classification string  `json:"classification,omitempty"`
}

// Customer is the customer-service view of an account holder.
type Customer struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId,omitempty"`
	FullName       string `json:"fullName"`
	Email          string `json:"email,omitempty"`
	MobileNumber   string `json:"mobileNumber,omitempty"`
	Classification string `json:"classification,omitempty"`
	Status         string `json:"status,omitempty"`
}

// FDAccount is a fixed-deposit account.
type FDAccount struct {
	ID              int64     `json:"id"`
	AccountNumber   string    `json:"accountNumber"`
	CustomerID      int64     `json:"customerId"`
	ProductCode     string    `json:"productCode,omitempty"`
	PrincipalAmount float64   `json:"principalAmount"`
	InterestRate    float64   `json:"interestRate"`
	MaturityAmount  float64   `json:"maturityAmount"`
	MaturityDate    time.Time `json:"maturityDate"`
	Status          string    `json:"status"`
}

// AccountTransaction is a ledger entry on an FD account.
type AccountTransaction struct {
	ID            int64     `json:"id"`
	AccountID     int64     `json:"accountId"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	ValueDate     time.Time `json:"valueDate"`
	Description   string    `json:"description,omitempty"`
}

// CalculationRequest asks the calculator service for a maturity projection.
// The interest formulas themselves are owned by the calculator service.
type CalculationRequest struct {
	PrincipalAmount      float64 `json:"principalAmount" validate:"required,gt=0"`
	InterestRate         float64 `json:"interestRate" validate:"required,gt=0"`
	Tenure               int     `json:"tenure" validate:"required,gt=0"`
	TenureUnit           string  `json:"tenureUnit" validate:"required,oneof=DAYS MONTHS YEARS"`
	CalculationType      string  `json:"calculationType" validate:"required,oneof=SIMPLE COMPOUND"`
	CompoundingFrequency string  `json:"compoundingFrequency,omitempty"`
	ProductID            int64   `json:"productId,omitempty"`
}

// CalculationResult is the calculator service's projection.
type CalculationResult struct {
	PrincipalAmount float64 `json:"principalAmount"`
	InterestRate    float64 `json:"interestRate"`
	InterestEarned  float64 `json:"interestEarned"`
	MaturityAmount  float64 `json:"maturityAmount"`
	MaturityDate    string  `json:"maturityDate,omitempty"`
}
