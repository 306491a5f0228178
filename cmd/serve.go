// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/config"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/db"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/logging"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/monitoring/prometheus"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/storage"
	"github.com/Oleksandr0130/WarehouseQR-sub000/internal/tracing"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/authentication"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/datasource"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/inventory"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/subscription"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/tenant"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/tokens"
	"github.com/Oleksandr0130/WarehouseQR-sub000/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("warehouseqr", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	controlDB, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create control database client: %v", err)
	}
	defer controlDB.Close()
	controlStorage := storage.NewStorage(controlDB, tracer, monitor, logger)

	tokenService, err := tokens.NewService(specs.JWTSecret, specs.AccessTokenTTL, specs.RefreshTokenTTL, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create token service: %v", err)
	}

	cookies := authentication.NewCookieManager(
		authentication.CookieConfig{
			Domain:   specs.CookieDomain,
			Secure:   specs.CookieSecure,
			SameSite: specs.CookieSameSite,
		},
		specs.AccessTokenTTL,
		specs.RefreshTokenTTL,
	)

	authMiddleware := authentication.NewMiddleware(tokenService, cookies, tracer, monitor, logger)
	authAPI := authentication.NewAPI(controlStorage, tokenService, cookies, tracer, monitor, logger)

	guard := subscription.NewGuard(controlStorage, controlStorage, subscription.DefaultAllowlist, tracer, monitor, logger)
	billingService := subscription.NewService(controlStorage, controlStorage, tracer, monitor, logger)
	billingAPI := subscription.NewAPI(billingService, tracer, monitor, logger)

	registry := datasource.NewRegistry()
	defer registry.Close()
	provisioner := datasource.NewProvisioner(registry, dbConfig, tracer, monitor, logger)

	if specs.DefaultTenantID != "" && specs.DefaultTenantDSN != "" {
		if err := provisioner.RegisterTenantStore(context.Background(), specs.DefaultTenantID, specs.DefaultTenantDSN); err != nil {
			return fmt.Errorf("failed to register default tenant store: %v", err)
		}
	}

	inventoryStorage := inventory.NewStorage(registry, tracer, monitor, logger)
	inventoryService := inventory.NewService(
		inventoryStorage,
		inventory.NewLinkQRRenderer(specs.QRBaseURL),
		inventory.NewLogMailer(logger),
		tracer,
		monitor,
		logger,
	)
	inventoryAPI := inventory.NewAPI(inventoryService, tracer, monitor, logger)

	tenantService := tenant.NewService(controlStorage, provisioner, tracer, monitor, logger)
	tenantAPI := tenant.NewAPI(tenantService, tracer, monitor, logger)

	router := web.NewRouter(
		authMiddleware,
		authAPI,
		guard,
		billingAPI,
		inventoryAPI,
		tenantAPI,
		controlDB,
		specs.CORSAllowedOrigins,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
