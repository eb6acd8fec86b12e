package cli

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fundvault/fundvaultd/internal/config"
	"github.com/fundvault/fundvaultd/internal/core/oracle"
	"github.com/fundvault/fundvaultd/internal/core/types"
	"github.com/fundvault/fundvaultd/internal/core/vault"
	"github.com/fundvault/fundvaultd/internal/events"
	"github.com/fundvault/fundvaultd/internal/rpc"
	"github.com/fundvault/fundvaultd/internal/storage/audit"
	auditpg "github.com/fundvault/fundvaultd/internal/storage/audit/postgres"
	auditsqlite "github.com/fundvault/fundvaultd/internal/storage/audit/sqlite"
	"github.com/fundvault/fundvaultd/internal/storage/keyvalue"
	"github.com/fundvault/fundvaultd/internal/storage/keyvalue/leveldb"
	"github.com/fundvault/fundvaultd/internal/storage/keyvalue/memory"
	"github.com/fundvault/fundvaultd/internal/storage/keyvalue/pebbledb"
	"github.com/fundvault/fundvaultd/internal/storage/statestore"
)

var (
	// Server flags
	port     int
	bindAddr string
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the vault daemon",
	Long: `Start fundvaultd, which provides:
- HTTP JSON-RPC API for funding, withdrawal and queries
- WebSocket event stream for contributions and withdrawals
- Health check endpoint

This is the default command when no subcommand is specified.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Set server as the default command
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serverCmd.RunE(cmd, args)
	}

	serverCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	serverCmd.Flags().StringVar(&bindAddr, "bind", "", "address to bind to (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if bindAddr != "" {
		cfg.Server.BindAddress = bindAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	owner, err := types.ParseAddress(cfg.Vault.Owner)
	if err != nil {
		return fmt.Errorf("parse owner: %w", err)
	}

	db, err := openDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	auditStore, err := openAudit(ctx, &cfg.Audit)
	if err != nil {
		return fmt.Errorf("open audit store: %w", err)
	}
	defer auditStore.Close()

	feed := buildFeed(&cfg.Oracle)

	var hub *events.Hub
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		hub, err = events.NewHub(cfg.Events.ReplaySize)
		if err != nil {
			return fmt.Errorf("create event hub: %w", err)
		}
		defer hub.Close()
		publisher = hub
	}

	v, err := vault.New(ctx, owner, feed, vault.Options{
		State:  statestore.NewStore(db, compressor(cfg.Database.Compression)),
		Audit:  auditStore,
		Events: publisher,
	})
	if err != nil {
		return fmt.Errorf("create vault: %w", err)
	}

	rpcServer := rpc.NewServer(v, time.Duration(cfg.Server.RequestTimeout)*time.Second)

	mux := http.NewServeMux()
	mux.Handle("/", rpcServer)
	mux.Handle("/rpc", rpcServer)
	if hub != nil {
		mux.Handle("/ws", hub)
	}
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"fundvaultd"}`))
	})

	listenAddr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: mux,
	}

	if !quiet {
		fmt.Println("Starting fundvaultd")
		fmt.Printf("  - Owner:         %s\n", owner)
		fmt.Printf("  - Minimum:       %s reference units\n", v.Minimum())
		fmt.Printf("  - Database:      %s\n", cfg.Database.Backend)
		fmt.Printf("  - Audit:         %s\n", cfg.Audit.Driver)
		fmt.Printf("  - Oracle:        %s\n", cfg.Oracle.Mode)
		fmt.Printf("  - HTTP JSON-RPC: http://%s/\n", listenAddr)
		if hub != nil {
			fmt.Printf("  - WebSocket:     ws://%s/ws\n", listenAddr)
		}
		fmt.Printf("  - Health Check:  http://%s/health\n", listenAddr)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openDatabase(cfg *config.DatabaseConfig) (keyvalue.DB, error) {
	switch cfg.Backend {
	case "memory":
		return memory.NewDB(), nil
	case "pebble":
		return pebbledb.Open(cfg.Path)
	case "leveldb":
		return leveldb.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}
}

func openAudit(ctx context.Context, cfg *config.AuditConfig) (audit.Store, error) {
	switch cfg.Driver {
	case "none":
		return audit.Nop{}, nil
	case "sqlite":
		return auditsqlite.Open(ctx, cfg.Path)
	case "postgres":
		return auditpg.Open(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown audit driver %q", cfg.Driver)
	}
}

func buildFeed(cfg *config.OracleConfig) oracle.PriceFeed {
	if cfg.Mode == "http" {
		return oracle.NewHTTPFeed(cfg.Endpoint, time.Duration(cfg.Timeout)*time.Second)
	}
	// Validation already checked the price parses.
	price, _ := new(big.Int).SetString(cfg.Price, 10)
	return oracle.NewFixedFeed(price, cfg.Decimals, cfg.Version)
}

func compressor(name string) statestore.Compressor {
	if name == "none" {
		return &statestore.NoCompressor{}
	}
	return &statestore.LZ4Compressor{}
}
