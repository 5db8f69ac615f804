package plaid

import (
	"context"
	"fmt"
	"strconv"

	"github.com/plaid/plaid-go/v41/plaid"
)

// LinkAPI is the subset of Plaid endpoints used to link a new item.
type LinkAPI interface {
	LinkTokenCreate(ctx context.Context, req plaid.LinkTokenCreateRequest) (plaid.LinkTokenCreateResponse, error)
	ItemPublicTokenExchange(ctx context.Context, req plaid.ItemPublicTokenExchangeRequest) (plaid.ItemPublicTokenExchangeResponse, error)
	ItemGet(ctx context.Context, req plaid.ItemGetRequest) (plaid.ItemGetResponse, error)
}

// LinkedItem is a freshly exchanged item, ready to store.
type LinkedItem struct {
	ItemID          string
	AccessToken     string
	InstitutionName string
}

// CreateLinkToken starts Plaid Link for the user with the transactions and
// liabilities products. webhookURL may be empty.
func CreateLinkToken(ctx context.Context, api LinkAPI, userID int64, webhookURL string) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: strconv.FormatInt(userID, 10),
	}
	req := plaid.NewLinkTokenCreateRequest(
		"Budgee",
		"en",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
	)
	req.SetUser(user)
	req.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})
	req.SetOptionalProducts([]plaid.Products{plaid.PRODUCTS_LIABILITIES})
	if webhookURL != "" {
		req.SetWebhook(webhookURL)
	}

	resp, err := api.LinkTokenCreate(ctx, *req)
	if err != nil {
		return "", fmt.Errorf("link token create: %w", err)
	}
	return resp.GetLinkToken(), nil
}

// ExchangePublicToken trades a Link public token for an access token.
// Institution details are best effort.
func ExchangePublicToken(ctx context.Context, api LinkAPI, publicToken string) (LinkedItem, error) {
	resp, err := api.ItemPublicTokenExchange(ctx, *plaid.NewItemPublicTokenExchangeRequest(publicToken))
	if err != nil {
		return LinkedItem{}, fmt.Errorf("public token exchange: %w", err)
	}
	linked := LinkedItem{
		ItemID:      resp.GetItemId(),
		AccessToken: resp.GetAccessToken(),
	}

	itemResp, err := api.ItemGet(ctx, *plaid.NewItemGetRequest(linked.AccessToken))
	if err != nil {
		return linked, nil
	}
	item := itemResp.GetItem()
	linked.InstitutionName = item.GetInstitutionName()
	return linked, nil
}
