package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"network_switcher/internal/app/connector"
	"network_switcher/internal/app/port"
	"network_switcher/internal/app/service"
	"network_switcher/internal/config"
	clientprovider "network_switcher/internal/infrastructure/network/client"
	networkdefinition "network_switcher/internal/infrastructure/network/definition"
	"network_switcher/internal/infrastructure/network/probe"
	"network_switcher/internal/infrastructure/restapi"
	"network_switcher/internal/infrastructure/sessionstore"
	"network_switcher/internal/infrastructure/telemetry"
	"network_switcher/internal/infrastructure/txstore"
	"network_switcher/internal/pkg/logger"
	"network_switcher/internal/pkg/metrics"
	"network_switcher/internal/pkg/utils"
)

const (
	sessionRetention       = 30 * time.Minute
	sessionCleanupInterval = 5 * time.Minute
)

func main() {
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.Init(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	appLogger := logger.NewSlogAdapter()
	appLogger.Info("Configuration loaded", "path", cfgPath)

	metrics.MustRegisterMetrics()

	networks := networkdefinition.NewNetworkDefinitionProvider(logger.Named("NetworkCatalog"))

	// A wallet that cannot be reached leaves the service read-only: the catalog,
	// status and transaction endpoints still work, switching answers 503.
	var (
		walletProvider port.WalletProvider
		chainObserver  port.ChainObserver
		account        = cfg.Wallet.Account
	)
	if len(cfg.Wallet.Endpoints) > 0 {
		dialCtx, cancel := context.WithTimeout(context.Background(), cfg.Wallet.ConnectTimeout())
		wallet, err := clientprovider.DialWallet(dialCtx, cfg.Wallet.Endpoints, cfg.Wallet.ConnectTimeout(), cfg.Wallet.CallTimeout())
		cancel()
		if err != nil {
			appLogger.Warn("Wallet unreachable, network switching disabled", "error", err)
		} else {
			defer wallet.Close()
			walletProvider = wallet
			chainObserver = wallet
			appLogger.Info("Wallet connected", "endpoint", wallet.Endpoint())

			if account == "" {
				accountsCtx, cancel := context.WithTimeout(context.Background(), cfg.Wallet.ConnectTimeout())
				accounts, err := wallet.Accounts(accountsCtx)
				cancel()
				if err != nil {
					appLogger.Warn("Failed to read wallet accounts", "error", err)
				} else if len(accounts) > 0 {
					account = accounts[0]
				}
			}
		}
	}

	connectors := clientprovider.NewConnectorProvider(
		connector.ParseKind(cfg.Wallet.Connector),
		walletProvider,
		logger.Named("Connector"),
	)

	store := txstore.NewMemoryStore(logger.Named("TransactionStore"))
	if cfg.Transactions.HistoryFile != "" {
		loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		_, err := store.LoadFile(loadCtx, cfg.Transactions.HistoryFile, networks)
		cancel()
		if err != nil {
			appLogger.Error("Failed to load transaction history", "file", cfg.Transactions.HistoryFile, "error", err)
		}
	}

	var emitter port.EventEmitter = telemetry.NopEmitter{}
	if cfg.Telemetry.Enabled {
		emitter = telemetry.NewPrometheusEmitter(metrics.TelemetryEvents, logger.Named("Telemetry"))
	}

	var prober port.NetworkProber
	if cfg.Probe.Enabled {
		prober = probe.NewProber(probe.Options{
			Timeout:         cfg.Probe.Timeout(),
			RateLimit:       cfg.Probe.RateLimit,
			Burst:           cfg.Probe.BurstLimit,
			Concurrency:     cfg.Probe.MaxConcurrentRequests,
			CacheTTL:        cfg.Probe.CacheTTL(),
			CleanupInterval: cfg.Probe.CleanupInterval(),
		}, zapLogger)
	}

	index := service.NewTransactionIndex(service.RecentWithin(cfg.Transactions.RecentWindow(), time.Now))
	resolver := service.NewConnectorResolver(connectors.Injected())
	statusSvc := service.NewConnectionStatusService(index, resolver, store, logger.Named("ConnectionStatus"))
	switchSvc := service.NewNetworkSwitchService(networks, emitter, logger.Named("NetworkSwitch"))

	handler := restapi.NewNetworkHandler(restapi.NetworkHandlerDeps{
		Networks:     networks,
		Switcher:     switchSvc,
		Status:       statusSvc,
		Index:        index,
		Transactions: store,
		Prober:       prober,
		Sessions:     sessionstore.NewRegistry(sessionRetention, sessionCleanupInterval),
		Wallet: restapi.WalletContext{
			Connector: connectors.Active(),
			Observer:  chainObserver,
			Account:   account,
			ENSName:   cfg.Wallet.ENSName,
		},
		ProbeTimeout: cfg.Probe.Timeout() * 2,
		Logger:       logger.Named("API"),
	})
	router := restapi.SetupRouter(handler, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
