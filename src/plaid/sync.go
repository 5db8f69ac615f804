package plaid

import (
	"context"
	"fmt"

	"budgee-insights/src/models"

	"github.com/plaid/plaid-go/v41/plaid"
)

// maxSyncPages bounds one sync run; the cursor lets the next run continue.
const maxSyncPages = 50

// SyncResult is one item's transaction changes since the stored cursor.
type SyncResult struct {
	// Upserts holds added and modified transactions.
	Upserts []models.Transaction
	Removed []string
	Cursor  string
}

// SyncItem pages through /transactions/sync from cursor until Plaid reports
// no more changes. Transactions that fail conversion are skipped and counted
// in skipped.
func SyncItem(ctx context.Context, api API, accessToken, cursor string) (SyncResult, int, error) {
	result := SyncResult{Cursor: cursor}
	skipped := 0

	for page := 0; page < maxSyncPages; page++ {
		req := plaid.NewTransactionsSyncRequest(accessToken)
		if result.Cursor != "" {
			req.SetCursor(result.Cursor)
		}
		resp, err := api.TransactionsSync(ctx, *req)
		if err != nil {
			return SyncResult{}, 0, fmt.Errorf("transactions sync: %w", err)
		}

		for _, list := range [][]plaid.Transaction{resp.GetAdded(), resp.GetModified()} {
			for _, t := range list {
				tx, err := ToTransaction(t)
				if err != nil {
					skipped++
					continue
				}
				result.Upserts = append(result.Upserts, tx)
			}
		}
		for _, r := range resp.GetRemoved() {
			result.Removed = append(result.Removed, r.GetTransactionId())
		}
		result.Cursor = resp.GetNextCursor()

		if !resp.GetHasMore() {
			return result, skipped, nil
		}
	}
	return result, skipped, nil
}

// FetchAccounts loads the item's accounts and fills APR and minimum payment
// from /liabilities/get where the item supports it.
func FetchAccounts(ctx context.Context, api API, accessToken string) ([]models.Account, error) {
	resp, err := api.AccountsGet(ctx, *plaid.NewAccountsGetRequest(accessToken))
	if err != nil {
		return nil, fmt.Errorf("accounts get: %w", err)
	}

	accounts := make([]models.Account, 0, len(resp.GetAccounts()))
	hasDebt := false
	for _, a := range resp.GetAccounts() {
		acc := ToAccount(a)
		hasDebt = hasDebt || acc.IsDebt()
		accounts = append(accounts, acc)
	}
	if !hasDebt {
		return accounts, nil
	}

	liab, err := api.LiabilitiesGet(ctx, *plaid.NewLiabilitiesGetRequest(accessToken))
	if err != nil {
		// Institutions without the liabilities product still sync balances.
		return accounts, nil
	}
	MergeLiabilities(accounts, liab.GetLiabilities())
	return accounts, nil
}
