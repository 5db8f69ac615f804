package models

import "time"

// Transaction is one ledger event as synced from the aggregation provider.
// Amount follows the provider sign convention: negative is money received,
// positive is money spent.
type Transaction struct {
	ID             string              `json:"id"`
	AccountID      string              `json:"account_id"`
	Amount         float64             `json:"amount"`
	Date           time.Time           `json:"date"`
	Name           string              `json:"name"`
	MerchantName   *string             `json:"merchant_name"`
	Categories     []string            `json:"category"`
	Structured     *StructuredCategory `json:"personal_finance_category,omitempty"`
	Pending        bool                `json:"pending"`
	OverrideBucket *Bucket             `json:"override_bucket,omitempty"`
	UserValidated  bool                `json:"user_validated"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Merchant returns the merchant name when present, otherwise the empty string.
func (t Transaction) Merchant() string {
	if t.MerchantName == nil {
		return ""
	}
	return *t.MerchantName
}

// HasUserDecision reports whether the bucket was settled by the user and must
// not be re-derived.
func (t Transaction) HasUserDecision() bool {
	return t.OverrideBucket != nil
}
