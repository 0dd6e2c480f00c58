package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shekel-labs/shekel-settlement/consumer"
	"github.com/shekel-labs/shekel-settlement/internal/api"
	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/config"
	"github.com/shekel-labs/shekel-settlement/internal/db"
	dbmodel "github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/observability/metrics"
	"github.com/shekel-labs/shekel-settlement/internal/observability/tracing"
	"github.com/shekel-labs/shekel-settlement/internal/queue"
	"github.com/shekel-labs/shekel-settlement/internal/services"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the settlement api server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	cmd.Flags().Bool("in-memory", false, "Keep state in memory instead of mongodb and serve the /v1/dev provisioning routes (development only)")

	return cmd
}

func startServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	inMemory, err := cmd.Flags().GetBool("in-memory")
	if err != nil {
		return err
	}

	var dbClient db.DbInterface
	if inMemory {
		log.Warn().Msg("using in-memory store, state is lost on exit")
		dbClient = db.NewMemoryDatabase()
	} else {
		if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
			return fmt.Errorf("error while setting up db model: %w", err)
		}

		mongoClient, err := db.New(ctx, cfg.Db)
		if err != nil {
			return fmt.Errorf("error while creating db client: %w", err)
		}
		defer func() {
			if err := mongoClient.Close(context.WithoutCancel(ctx)); err != nil {
				log.Error().Err(err).Msg("error while closing db client")
			}
		}()
		dbClient = mongoClient
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	auth, err := authority.New(cfg.Operator.ProgramAddress())
	if err != nil {
		return fmt.Errorf("error while deriving authority: %w", err)
	}
	log.Info().
		Stringer("authority", auth.Address()).
		Stringer("pool", auth.PoolAddress()).
		Stringer("treasury", auth.TreasuryAddress()).
		Msg("derived protocol addresses")

	var eventConsumer consumer.EventConsumer
	if cfg.Queue != nil {
		zapLogger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("error while creating zap logger: %w", err)
		}
		defer func() {
			_ = zapLogger.Sync()
		}()

		qm, err := queue.NewQueueManager(cfg.Queue, zapLogger)
		if err != nil {
			return fmt.Errorf("failed to initialize event consumer: %w", err)
		}
		if err := qm.Start(); err != nil {
			return fmt.Errorf("failed to start event consumer: %w", err)
		}
		defer func() {
			if err := qm.Stop(); err != nil {
				log.Error().Err(err).Msg("error while stopping event consumer")
			}
		}()
		eventConsumer = qm
	} else {
		log.Info().Msg("queue is not configured, settlement events won't be published")
	}

	service := services.NewService(cfg, dbClient, auth, eventConsumer)
	if err := asError(service.VerifyAuthority(ctx)); err != nil {
		return fmt.Errorf("error while verifying the stored authority: %w", err)
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsPort())

	service.StartBalancePoller(ctx)

	var routerOpts []api.RouterOption
	if inMemory {
		log.Warn().Msg("development routes under /v1/dev are enabled")
		routerOpts = append(routerOpts, api.WithDevRoutes())
	}
	server := api.New(&cfg.Server, service, routerOpts...)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
