package api

import (
	"net/http"

	"budgee-insights/src/handlers"
	"budgee-insights/src/middleware"
	plaidsync "budgee-insights/src/plaid"
	"budgee-insights/src/service"
	"budgee-insights/src/util"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Plaid is everything the routes need from the Plaid client.
type Plaid interface {
	plaidsync.API
	plaidsync.LinkAPI
}

type Deps struct {
	Pool     *pgxpool.Pool
	Service  *service.Service
	Plaid    Plaid
	Verifier *util.Verifier
	Logger   zerolog.Logger

	JWTSecret       string
	CORSOrigins     []string
	PlaidWebhookURL string
	ReadOnly        bool
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(d.CORSOrigins))
	r.Use(middleware.ReadOnlyMiddleware(d.ReadOnly))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/plaid/webhook", handlers.PlaidWebhook(d.Verifier, d.Plaid, d.Pool, d.Service))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(d.JWTSecret)).Group(func(r chi.Router) {
			// Insights
			r.Get("/insights/analysis", handlers.GetAnalysis(d.Service))
			r.Get("/insights/paycheck/detect", handlers.DetectPaycheck(d.Service))
			r.Put("/insights/paycheck", handlers.ConfirmPaycheck(d.Service))
			r.Get("/insights/allocations", handlers.ListAllocations(d.Service))
			r.Post("/insights/allocations", handlers.GenerateAllocations(d.Service))
			r.Post("/insights/allocations/{id}/{action}", handlers.TransitionAllocation(d.Service))
			r.Put("/transactions/{transaction_id}/bucket", handlers.OverrideTransactionBucket(d.Service))

			// Allocation targets
			r.Post("/allocation-targets", handlers.CreateAllocationTarget(d.Pool))
			r.Get("/allocation-targets", handlers.GetAllAllocationTargets(d.Pool))
			r.Get("/allocation-targets/{target_id}", handlers.GetAllocationTargetByID(d.Pool))
			r.Put("/allocation-targets/{target_id}", handlers.UpdateAllocationTarget(d.Pool))
			r.Delete("/allocation-targets/{target_id}", handlers.DeleteAllocationTarget(d.Pool))

			// Bucket rules
			r.Post("/bucket-rules", handlers.CreateBucketRule(d.Pool, d.Service))
			r.Get("/bucket-rules", handlers.GetAllBucketRules(d.Pool))
			r.Get("/bucket-rules/{rule_id}", handlers.GetBucketRuleByID(d.Pool))
			r.Put("/bucket-rules/{rule_id}", handlers.UpdateBucketRule(d.Pool, d.Service))
			r.Delete("/bucket-rules/{rule_id}", handlers.DeleteBucketRule(d.Pool, d.Service))

			// Plaid
			r.Post("/plaid/create-link-token", handlers.CreateLinkToken(d.Plaid, d.PlaidWebhookURL))
			r.Post("/plaid/exchange-public-token", handlers.ExchangePublicToken(d.Plaid, d.Pool))
			r.Get("/plaid/items", handlers.GetPlaidItems(d.Pool))
			r.Post("/plaid/items/{item_id}/sync", handlers.SyncPlaidItem(d.Plaid, d.Pool, d.Service))
			r.Get("/accounts", handlers.GetAccounts(d.Pool))
			r.Put("/accounts/{account_id}/tags", handlers.SetAccountTags(d.Pool, d.Service))
		})
	})

	return r
}
