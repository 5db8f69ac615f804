package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgee-insights/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetPlaidItems(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.PlaidItem, error) {
	query := `SELECT id, user_id, access_token, item_id, COALESCE(institution_name, ''), created_at FROM plaid_items WHERE user_id = $1 ORDER BY id`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PlaidItem
	for rows.Next() {
		var item models.PlaidItem
		err := rows.Scan(&item.ID, &item.UserID, &item.AccessToken, &item.ItemID, &item.InstitutionName, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetPlaidItem returns the user's item by its database id, or nil when the
// user has no such item.
func GetPlaidItem(ctx context.Context, pool *pgxpool.Pool, userID, itemID int64) (*models.PlaidItem, error) {
	query := `SELECT id, user_id, access_token, item_id, COALESCE(institution_name, ''), created_at FROM plaid_items WHERE user_id = $1 AND id = $2`
	var item models.PlaidItem
	err := pool.QueryRow(ctx, query, userID, itemID).
		Scan(&item.ID, &item.UserID, &item.AccessToken, &item.ItemID, &item.InstitutionName, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetPlaidItemByPlaidID looks an item up by Plaid's item_id, as sent in webhooks.
func GetPlaidItemByPlaidID(ctx context.Context, pool *pgxpool.Pool, plaidItemID string) (*models.PlaidItem, error) {
	query := `SELECT id, user_id, access_token, item_id, COALESCE(institution_name, ''), created_at FROM plaid_items WHERE item_id = $1`
	var item models.PlaidItem
	err := pool.QueryRow(ctx, query, plaidItemID).
		Scan(&item.ID, &item.UserID, &item.AccessToken, &item.ItemID, &item.InstitutionName, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SavePlaidItem stores a newly linked item. Relinking the same Plaid item
// replaces its access token.
func SavePlaidItem(ctx context.Context, pool *pgxpool.Pool, userID int64, itemID, accessToken, institutionName string) (*models.PlaidItem, error) {
	query := `
		INSERT INTO plaid_items (user_id, item_id, access_token, institution_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO UPDATE SET access_token = $3, institution_name = $4
		RETURNING id, user_id, access_token, item_id, COALESCE(institution_name, ''), created_at
	`
	var item models.PlaidItem
	err := pool.QueryRow(ctx, query, userID, itemID, accessToken, institutionName).
		Scan(&item.ID, &item.UserID, &item.AccessToken, &item.ItemID, &item.InstitutionName, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func GetSyncCursor(ctx context.Context, pool *pgxpool.Pool, itemID int64) (string, error) {
	query := `SELECT COALESCE(sync_cursor, '') FROM plaid_items WHERE id = $1`
	var cursor string
	err := pool.QueryRow(ctx, query, itemID).Scan(&cursor)
	if err != nil {
		return "", err
	}
	return cursor, nil
}

func UpdateSyncCursor(ctx context.Context, pool *pgxpool.Pool, itemID int64, cursor string) error {
	query := `UPDATE plaid_items SET sync_cursor = $1 WHERE id = $2`
	_, err := pool.Exec(ctx, query, cursor, itemID)
	return err
}

// SaveAccounts upserts an item's accounts. User tags are left untouched.
func SaveAccounts(ctx context.Context, pool *pgxpool.Pool, itemID int64, accounts []models.Account) error {
	query := `
		INSERT INTO accounts (item_id, account_id, name, official_name, mask, type, subtype,
			current_balance, available_balance, credit_limit, minimum_payment, apr)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (account_id) DO UPDATE SET
			name = $3,
			official_name = $4,
			current_balance = $8,
			available_balance = $9,
			credit_limit = $10,
			minimum_payment = $11,
			apr = $12,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, acc := range accounts {
		batch.Queue(query,
			itemID,
			acc.AccountID,
			acc.Name,
			acc.OfficialName,
			acc.Mask,
			string(acc.Type),
			acc.Subtype,
			acc.CurrentBalance,
			acc.AvailableBalance,
			acc.CreditLimit,
			acc.MinimumPayment,
			acc.APR,
		)
	}
	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

// SaveTransactions upserts synced transactions. A user override and its
// validation flag survive re-syncs.
func SaveTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64, transactions []models.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, transaction_id, amount, name, merchant_name, date, category,
			primary_category, detailed_category, category_confidence, pending, created_at)
		SELECT a.id, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()
		FROM accounts a
		JOIN plaid_items p ON a.item_id = p.id
		WHERE p.user_id = $11 AND a.account_id = $12
		ON CONFLICT (transaction_id) DO UPDATE SET
			amount = $2,
			name = $3,
			merchant_name = $4,
			date = $5,
			category = $6,
			primary_category = $7,
			detailed_category = $8,
			category_confidence = $9,
			pending = $10,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, txn := range transactions {
		var primary, detailed, confidence *string
		if s := txn.Structured; s != nil {
			p, d, c := string(s.Primary), s.Detailed, string(s.Confidence)
			primary, detailed, confidence = &p, &d, &c
		}
		batch.Queue(query,
			txn.ID,
			txn.Amount,
			txn.Name,
			txn.MerchantName,
			txn.Date,
			txn.Categories,
			primary,
			detailed,
			confidence,
			txn.Pending,
			userID,
			txn.AccountID,
		)
	}
	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

func DeleteTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	query := `
		DELETE FROM transactions t
		USING accounts a, plaid_items p
		WHERE t.account_id = a.id AND a.item_id = p.id
			AND p.user_id = $1 AND t.transaction_id = ANY($2)
	`
	_, err := pool.Exec(ctx, query, userID, transactionIDs)
	return err
}

const accountColumns = `
	a.id::text, p.item_id, a.account_id, a.name, COALESCE(a.official_name, ''), COALESCE(a.mask, ''),
	a.type, COALESCE(a.subtype, ''), a.current_balance, a.available_balance, a.credit_limit,
	a.minimum_payment, a.apr, a.tags, a.created_at::text`

func scanAccount(row pgx.Row) (models.Account, error) {
	var (
		account models.Account
		typ     string
	)
	err := row.Scan(&account.ID, &account.ItemID, &account.AccountID, &account.Name, &account.OfficialName,
		&account.Mask, &typ, &account.Subtype, &account.CurrentBalance, &account.AvailableBalance,
		&account.CreditLimit, &account.MinimumPayment, &account.APR, &account.Tags, &account.CreatedAt)
	account.Type = models.ParseAccountType(typ)
	return account, err
}

func ListAccountsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts a
		JOIN plaid_items p ON a.item_id = p.id
		WHERE p.user_id = $1
		ORDER BY a.id
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func SetAccountTags(ctx context.Context, pool *pgxpool.Pool, userID int64, accountID string, tags []string) error {
	query := `
		UPDATE accounts a SET tags = $1, updated_at = NOW()
		FROM plaid_items p
		WHERE a.item_id = p.id AND p.user_id = $2 AND a.account_id = $3
	`
	cmd, err := pool.Exec(ctx, query, tags, userID, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}

const transactionColumns = `
	t.transaction_id, a.account_id, t.amount, t.date, t.name, t.merchant_name, COALESCE(t.category, '{}'),
	t.primary_category, t.detailed_category, t.category_confidence, t.pending, t.override_bucket,
	t.user_validated, t.created_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var (
		tx                            models.Transaction
		primary, detailed, confidence *string
		override                      *string
	)
	err := row.Scan(&tx.ID, &tx.AccountID, &tx.Amount, &tx.Date, &tx.Name, &tx.MerchantName, &tx.Categories,
		&primary, &detailed, &confidence, &tx.Pending, &override, &tx.UserValidated, &tx.CreatedAt)
	if err != nil {
		return tx, err
	}
	if primary != nil {
		tx.Structured = &models.StructuredCategory{Primary: models.ParsePrimaryCategory(*primary)}
		if detailed != nil {
			tx.Structured.Detailed = *detailed
		}
		if confidence != nil {
			tx.Structured.Confidence = models.ParseConfidenceLevel(*confidence)
		} else {
			tx.Structured.Confidence = models.ConfidenceUnknown
		}
	}
	if override != nil {
		b := models.Bucket(*override)
		tx.OverrideBucket = &b
	}
	return tx, nil
}

// ListTransactionsForUser returns the user's transactions dated on or after
// since, oldest first.
func ListTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64, since time.Time) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN plaid_items p ON a.item_id = p.id
		WHERE p.user_id = $1 AND t.date >= $2
		ORDER BY t.date, t.id
	`

	rows, err := pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func GetTransaction(ctx context.Context, pool *pgxpool.Pool, userID int64, transactionID string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN plaid_items p ON a.item_id = p.id
		WHERE p.user_id = $1 AND t.transaction_id = $2
	`
	tx, err := scanTransaction(pool.QueryRow(ctx, query, userID, transactionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// SetTransactionOverride stores the user's bucket and marks it validated.
// A validated override is never replaced.
func SetTransactionOverride(ctx context.Context, pool *pgxpool.Pool, userID int64, transactionID string, bucket models.Bucket) error {
	query := `
		UPDATE transactions t
		SET override_bucket = $1, user_validated = TRUE, updated_at = NOW()
		FROM accounts a, plaid_items p
		WHERE t.account_id = a.id AND a.item_id = p.id
			AND p.user_id = $2 AND t.transaction_id = $3
			AND NOT (t.user_validated AND t.override_bucket IS NOT NULL)
	`
	cmd, err := pool.Exec(ctx, query, string(bucket), userID, transactionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s not found or already validated", transactionID)
	}
	return nil
}
