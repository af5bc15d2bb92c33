package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/cart"
	"brytashop-be/internal/config"
	"brytashop-be/internal/db"
	"brytashop-be/internal/events"
	"brytashop-be/internal/graph"
	"brytashop-be/internal/item"
	"brytashop-be/internal/logger"
	"brytashop-be/internal/mail"
	"brytashop-be/internal/metrics"
	"brytashop-be/internal/middleware"
	"brytashop-be/internal/order"
	"brytashop-be/internal/payment"
	"brytashop-be/internal/payment/webhook"
	"brytashop-be/internal/transport"
	"brytashop-be/internal/user"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	gqltransport "github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	app := newApp(cfg, database)
	defer app.close()

	stop := make(chan struct{})
	defer close(stop)
	go app.limiter.Run(time.Minute, stop)

	addr := ":" + cfg.AppPort
	logger.L().Info("graphql server listening",
		zap.String("addr", addr),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(addr, app.handler)
}

type app struct {
	handler   http.Handler
	limiter   *middleware.RateLimiter
	publisher events.Publisher
}

func (a *app) close() {
	if err := a.publisher.Close(); err != nil {
		logger.L().Warn("closing event publisher", zap.Error(err))
	}
}

// newServer wires repositories, services and the HTTP surface on top of db.
func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	return newApp(cfg, database).handler
}

func newApp(cfg *config.Config, database *sql.DB) *app {
	tokens := auth.NewTokenManager(cfg.AppSecret)
	mailer := mail.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.IsProduction())
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	registry := metrics.NewRegistry()

	itemRepo := item.NewRepository(database)
	itemSvc := item.NewService(itemRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens, mailer, cfg.FrontendURL)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, itemRepo)

	paystack := payment.NewPaystackGateway(cfg.PaystackSecretKey)
	orderSvc := order.NewService(order.Deps{
		Repo:      order.NewRepository(database),
		Carts:     cartRepo,
		Stripe:    payment.NewStripeGateway(cfg.StripeSecretKey),
		Paystack:  paystack,
		Publisher: publisher,
		Metrics:   registry,
		Currency:  cfg.Currency,
	})

	resolver := &graph.Resolver{
		ItemSvc:       itemSvc,
		UserSvc:       userSvc,
		CartSvc:       cartSvc,
		OrderSvc:      orderSvc,
		SecureCookies: cfg.IsProduction(),
	}

	limiter := middleware.NewRateLimiter(cfg.InternalAPIKey)

	webhookHandler := webhook.NewWebhookHandler(orderSvc, paystack)
	router := setupRouter(newGraphQLServer(resolver, limiter.Operations()), webhookHandler.WebhookHandler, registry.Handler())

	var h http.Handler = router
	h = limiter.Middleware(h)
	h = middleware.AuthMiddleware(tokens, userSvc)(h)
	h = transport.Middleware(h)
	h = middleware.CORS(cfg.FrontendURL)(h)
	h = middleware.LoggingMiddleware(h)
	h = middleware.RequestMetrics(registry)(h)
	h = logger.RequestIDMiddleware(h)

	return &app{handler: h, limiter: limiter, publisher: publisher}
}

func newGraphQLServer(resolver *graph.Resolver, exts ...graphql.HandlerExtension) *handler.Server {
	srv := handler.New(graph.NewSchema(resolver))
	srv.AddTransport(gqltransport.Options{})
	srv.AddTransport(gqltransport.GET{})
	srv.AddTransport(gqltransport.POST{})
	srv.Use(extension.Introspection{})
	for _, ext := range exts {
		srv.Use(ext)
	}
	srv.SetErrorPresenter(graph.ErrorPresenter)
	srv.SetRecoverFunc(graph.RecoverFunc)
	return srv
}

func setupRouter(srv http.Handler, webhookHandler http.HandlerFunc, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", playground.Handler("GraphQL Playground", "/query"))
	mux.Handle("/query", srv)
	mux.HandleFunc("POST /webhook/paystack", webhookHandler)
	mux.Handle("GET /metrics", metricsHandler)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}
