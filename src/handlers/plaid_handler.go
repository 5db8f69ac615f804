package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	db "budgee-insights/src/db/sql"
	"budgee-insights/src/logger"
	"budgee-insights/src/models"
	plaidsync "budgee-insights/src/plaid"
	"budgee-insights/src/service"
	"budgee-insights/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxWebhookBody = 1 << 20

type syncSummary struct {
	Accounts int `json:"accounts"`
	Upserted int `json:"upserted"`
	Removed  int `json:"removed"`
	Skipped  int `json:"skipped"`
}

// syncItem refreshes one item's accounts and transactions from Plaid and
// advances its cursor once everything is stored.
func syncItem(ctx context.Context, api plaidsync.API, pool *pgxpool.Pool, item models.PlaidItem) (syncSummary, error) {
	accounts, err := plaidsync.FetchAccounts(ctx, api, item.AccessToken)
	if err != nil {
		return syncSummary{}, err
	}
	if err := db.SaveAccounts(ctx, pool, item.ID, accounts); err != nil {
		return syncSummary{}, fmt.Errorf("save accounts: %w", err)
	}

	cursor, err := db.GetSyncCursor(ctx, pool, item.ID)
	if err != nil {
		return syncSummary{}, fmt.Errorf("get sync cursor: %w", err)
	}
	result, skipped, err := plaidsync.SyncItem(ctx, api, item.AccessToken, cursor)
	if err != nil {
		return syncSummary{}, err
	}
	if err := db.SaveTransactions(ctx, pool, item.UserID, result.Upserts); err != nil {
		return syncSummary{}, fmt.Errorf("save transactions: %w", err)
	}
	if err := db.DeleteTransactions(ctx, pool, item.UserID, result.Removed); err != nil {
		return syncSummary{}, fmt.Errorf("delete transactions: %w", err)
	}
	if err := db.UpdateSyncCursor(ctx, pool, item.ID, result.Cursor); err != nil {
		return syncSummary{}, fmt.Errorf("update sync cursor: %w", err)
	}

	return syncSummary{
		Accounts: len(accounts),
		Upserted: len(result.Upserts),
		Removed:  len(result.Removed),
		Skipped:  skipped,
	}, nil
}

func CreateLinkToken(api plaidsync.LinkAPI, webhookURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		token, err := plaidsync.CreateLinkToken(r.Context(), api, userID, webhookURL)
		if err != nil {
			l.Error().Err(err).Msg("plaid link token creation failed")
			http.Error(w, "failed to create link token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"link_token": token})
	}
}

func ExchangePublicToken(api plaidsync.LinkAPI, pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)

		var req struct {
			PublicToken string `json:"public_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PublicToken == "" {
			l.Error().Err(err).Msg("failed to decode exchange public token request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		linked, err := plaidsync.ExchangePublicToken(r.Context(), api, req.PublicToken)
		if err != nil {
			l.Error().Err(err).Msg("plaid public token exchange failed")
			http.Error(w, "failed to exchange public token", http.StatusInternalServerError)
			return
		}
		item, err := db.SavePlaidItem(r.Context(), pool, userID, linked.ItemID, linked.AccessToken, linked.InstitutionName)
		if err != nil {
			l.Error().Err(err).Str("plaid_item_id", linked.ItemID).Msg("failed to save plaid item")
			http.Error(w, "failed to save plaid item", http.StatusInternalServerError)
			return
		}
		l.Info().Int64("item_id", item.ID).Str("institution", item.InstitutionName).Msg("linked plaid item")
		writeJSON(w, http.StatusCreated, item)
	}
}

func GetPlaidItems(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		items, err := db.GetPlaidItems(r.Context(), pool, userID)
		if err != nil {
			l.Error().Err(err).Msg("failed to get plaid items")
			http.Error(w, "failed to retrieve plaid items", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func GetAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		accounts, err := db.ListAccountsForUser(r.Context(), pool, userID)
		if err != nil {
			l.Error().Err(err).Msg("failed to get accounts")
			http.Error(w, "failed to retrieve accounts", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, accounts)
	}
}

// SetAccountTags replaces an account's tags, e.g. "emergency_fund".
func SetAccountTags(pool *pgxpool.Pool, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		accountID := chi.URLParam(r, "account_id")

		var req struct {
			Tags []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Error().Err(err).Msg("failed to decode account tags request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Tags == nil {
			req.Tags = []string{}
		}
		if err := db.SetAccountTags(r.Context(), pool, userID, accountID, req.Tags); err != nil {
			l.Warn().Err(err).Str("account_id", accountID).Msg("failed to set account tags")
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		svc.Invalidate(userID)
		l.Info().Str("account_id", accountID).Strs("tags", req.Tags).Msg("updated account tags")
		writeJSON(w, http.StatusOK, map[string]interface{}{"account_id": accountID, "tags": req.Tags})
	}
}

func SyncPlaidItem(api plaidsync.API, pool *pgxpool.Pool, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		itemIDStr := chi.URLParam(r, "item_id")
		itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}
		l = l.With().Int64("item_id", itemID).Logger()

		item, err := db.GetPlaidItem(r.Context(), pool, userID, itemID)
		if err != nil {
			l.Error().Err(err).Msg("failed to get plaid item")
			http.Error(w, "failed to retrieve plaid item", http.StatusInternalServerError)
			return
		}
		if item == nil {
			http.Error(w, "plaid item not found", http.StatusNotFound)
			return
		}

		summary, err := syncItem(r.Context(), api, pool, *item)
		if err != nil {
			l.Error().Err(err).Msg("failed to sync plaid item")
			http.Error(w, "failed to sync transactions", http.StatusBadGateway)
			return
		}
		svc.Invalidate(userID)
		l.Info().Int("upserted", summary.Upserted).Int("removed", summary.Removed).Int("skipped", summary.Skipped).Msg("synced plaid item")
		writeJSON(w, http.StatusOK, summary)
	}
}

// PlaidWebhook verifies a Plaid webhook and syncs the item when Plaid
// reports new transactions. Other webhook codes are acknowledged and ignored.
func PlaidWebhook(verifier *util.Verifier, api plaidsync.API, pool *pgxpool.Pool, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logger.FromContext(r.Context())

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := verifier.Verify(r.Context(), body, r.Header); err != nil {
			l.Warn().Err(err).Msg("rejected plaid webhook")
			http.Error(w, "invalid webhook signature", http.StatusUnauthorized)
			return
		}

		var hook struct {
			WebhookType string `json:"webhook_type"`
			WebhookCode string `json:"webhook_code"`
			ItemID      string `json:"item_id"`
		}
		if err := json.Unmarshal(body, &hook); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		l = l.With().Str("webhook_type", hook.WebhookType).Str("webhook_code", hook.WebhookCode).Str("plaid_item_id", hook.ItemID).Logger()

		if hook.WebhookType != "TRANSACTIONS" || hook.WebhookCode != "SYNC_UPDATES_AVAILABLE" {
			l.Info().Msg("ignored plaid webhook")
			w.WriteHeader(http.StatusOK)
			return
		}

		item, err := db.GetPlaidItemByPlaidID(r.Context(), pool, hook.ItemID)
		if err != nil {
			l.Error().Err(err).Msg("failed to get plaid item for webhook")
			http.Error(w, "failed to retrieve plaid item", http.StatusInternalServerError)
			return
		}
		if item == nil {
			l.Warn().Msg("webhook for unknown plaid item")
			w.WriteHeader(http.StatusOK)
			return
		}

		summary, err := syncItem(r.Context(), api, pool, *item)
		if err != nil {
			l.Error().Err(err).Msg("failed to sync plaid item from webhook")
			http.Error(w, "failed to sync transactions", http.StatusInternalServerError)
			return
		}
		svc.Invalidate(item.UserID)
		l.Info().Int64("user_id", item.UserID).Int("upserted", summary.Upserted).Int("removed", summary.Removed).Msg("synced plaid item from webhook")
		w.WriteHeader(http.StatusOK)
	}
}
