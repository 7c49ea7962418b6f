package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"moneydream/internal/config"
	"moneydream/internal/db"
	"moneydream/internal/domain"
	"moneydream/internal/httpserver"
	"moneydream/internal/payment"
	"moneydream/internal/repository/cartstore"
	orderrepo "moneydream/internal/repository/order"
	productrepo "moneydream/internal/repository/product"
	sessionrepo "moneydream/internal/repository/session"
	settingsrepo "moneydream/internal/repository/settings"
	userrepo "moneydream/internal/repository/user"
	authsvc "moneydream/internal/service/auth"
	cartsvc "moneydream/internal/service/cart"
	catalogsvc "moneydream/internal/service/catalog"
	checkoutsvc "moneydream/internal/service/checkout"
	settingssvc "moneydream/internal/service/settings"
	"moneydream/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	// The storefront stays usable without Postgres: catalog and orders are
	// unavailable but the cart, pricing and checkout mock keep working.
	var dbpool *pgxpool.Pool
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Printf("db unavailable, continuing without persistence: %v", err)
		} else {
			dbpool = pool
			defer pool.Close()
		}
	} else {
		logger.Printf("no DB_DSN configured, continuing without persistence")
	}

	var sessionStore session.Store = session.Unavailable{}
	var cartMirror cartstore.Store
	if dbpool != nil {
		sessionStore = sessionrepo.NewPostgres(dbpool, logger)
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Printf("redis unavailable, cart will not survive restarts: %v", err)
		} else {
			cartMirror = cartstore.NewRedis(rdb)
		}
	}

	holder := session.NewHolder(sessionStore, logger)
	holder.Start(ctx)

	cartService := cartsvc.New(cartMirror, logger)
	cartService.Restore(ctx)

	defaults := domain.Settings{
		StoreName:                  "Money Dream",
		Currency:                   "USD",
		FreeShippingThresholdCents: cfg.FreeShippingThresholdCents,
		FlatShippingCents:          cfg.FlatShippingCents,
		TaxRateBasisPoints:         cfg.TaxRateBasisPoints,
	}

	var (
		settingsService *settingssvc.Service
		deps            httpserver.Deps
	)
	if dbpool != nil {
		settingsService = settingssvc.New(settingsrepo.NewPostgres(dbpool), defaults, logger)
		settingsService.Load(ctx)

		userRepo := userrepo.NewPostgres(dbpool, logger)
		productRepo := productrepo.NewPostgres(dbpool, logger)
		orderRepo := orderrepo.NewPostgres(dbpool, logger)
		payments := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentAccessToken, cfg.SiteURL, logger)

		deps = httpserver.Deps{
			AuthSvc:     authsvc.New(userRepo),
			Sessions:    holder,
			CartSvc:     cartService,
			CheckoutSvc: checkoutsvc.New(cartService, settingsService, payments, orderRepo, logger),
			CatalogSvc:  catalogsvc.New(productRepo),
			Orders:      orderRepo,
			SettingsSvc: settingsService,
		}
	} else {
		settingsService = settingssvc.New(nil, defaults, logger)
		payments := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentAccessToken, cfg.SiteURL, logger)

		// Volatile repositories with the demo accounts so the storefront
		// stays fully usable without Postgres.
		userRepo := userrepo.NewMemory(demoUsers(logger)...)
		productRepo := productrepo.NewMemory()
		orderRepo := orderrepo.NewMemory()

		deps = httpserver.Deps{
			AuthSvc:     authsvc.New(userRepo),
			Sessions:    holder,
			CartSvc:     cartService,
			CheckoutSvc: checkoutsvc.New(cartService, settingsService, payments, orderRepo, logger),
			CatalogSvc:  catalogsvc.New(productRepo),
			Orders:      orderRepo,
			SettingsSvc: settingsService,
		}
	}
	deps.LoginRatePerMinute = cfg.LoginRatePerMinute

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}

	// Let in-flight mirror writes land before the pools close.
	holder.Flush()
	cartService.Flush()
}

func demoUsers(logger *log.Logger) []domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		logger.Printf("hash demo password: %v", err)
		return nil
	}
	return []domain.User{
		{Email: "admin@moneydream.com", PasswordHash: string(hash), Name: "Administrador", Role: domain.RoleAdmin},
		{Email: "cliente@moneydream.com", PasswordHash: string(hash), Name: "Cliente Demo", Role: domain.RoleClient},
	}
}
