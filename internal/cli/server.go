package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firstaid-quiz/internal/app"
	"firstaid-quiz/internal/config"
	"firstaid-quiz/internal/domain"
	filestore "firstaid-quiz/internal/infra/file"
	"firstaid-quiz/internal/infra/memory"
	pgloader "firstaid-quiz/internal/infra/postgres"
	redisinfra "firstaid-quiz/internal/infra/redis"
	transport "firstaid-quiz/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand that starts the game server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.PoolLoader = filestore.NewQuestionLoader(cfg.Data.Questions)
	if pool != nil {
		loader = pgloader.NewQuestionLoader(pool)
	}

	// Surface a degraded question source at startup instead of on the first
	// level start; an empty bank leaves every level effectively locked.
	if pools, err := loader.LoadPools(ctx); err != nil {
		log.Printf("WARNING: %v; all levels will be unplayable until content is fixed", err)
	} else {
		total := 0
		for _, tier := range domain.Tiers {
			total += len(pools[tier])
		}
		log.Printf("question bank loaded: %d questions", total)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var source app.QuestionSource
	if redisClient != nil {
		source = redisinfra.NewBankRepository(redisClient, loader, bankTTL)
	} else {
		source = memory.NewBankRepository(loader, bankTTL)
	}

	var store app.ProgressStore = filestore.NewProgressStore(cfg.Data.Progress)
	if redisClient != nil {
		store = redisinfra.NewProgressStore(redisClient, cfg.Redis.Player)
	}

	controller := app.NewGameController(ctx, app.NewBank(source, nil), store)
	wsHandler := transport.NewWSHandler(controller)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting first-aid quiz on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
