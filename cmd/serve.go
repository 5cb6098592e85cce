package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/club-budget-server/api"
	"github.com/carson-networks/club-budget-server/internal/config"
	"github.com/carson-networks/club-budget-server/internal/events"
	"github.com/carson-networks/club-budget-server/internal/imagestore"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/ocr"
	"github.com/carson-networks/club-budget-server/internal/operator"
	"github.com/carson-networks/club-budget-server/internal/service"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/memory"
)

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Start the HTTP API",
	RunE:         serveCmdF,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func serveCmdF(cmd *cobra.Command, args []string) error {
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return err
	}

	logger := logging.SetupLogging(env.LogLevel)
	logger.Info("club-budget-server starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(env, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	images, err := openImageStore(ctx, env)
	if err != nil {
		return err
	}

	recognizer, err := openRecognizer(ctx, env, logger)
	if err != nil {
		return err
	}

	publisher, err := openPublisher(env)
	if err != nil {
		return err
	}
	defer publisher.Close()

	op := operator.NewOperatorDelegator(backend, env.OperatorWorkers, operator.WithLogger(logger))
	op.Start()
	defer op.Stop()

	rest := api.Rest{
		Logger:  logger,
		Port:    env.Port,
		Storage: backend,
		Service: service.NewService(service.Dependencies{
			Reader:     backend.Reader(),
			Operator:   op,
			Images:     images,
			Publisher:  publisher,
			Recognizer: recognizer,
			Logger:     logger,
		}),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return rest.Serve(groupCtx)
	})

	err = group.Wait()
	logger.WithError(err).Info("club-budget-server stopped")
	return err
}

func openBackend(env *config.Config, logger *logrus.Logger) (storage.Backend, error) {
	if env.DataBackend == "memory" {
		logger.Warn("using in-memory storage; data is lost on exit")
		return memory.NewStore(), nil
	}

	if env.MigrateOnStart {
		status, err := storage.RunMigrations(env.PostgresDSN())
		if err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"preMigrationVersion":  status.PreMigrationVersion,
			"postMigrationVersion": status.PostMigrationVersion,
		}).Info("Migration status")
	}

	return storage.NewStorage(env)
}

// openImageStore returns nil when receipt uploads are disabled.
func openImageStore(ctx context.Context, env *config.Config) (imagestore.Store, error) {
	switch env.ReceiptStore {
	case "file":
		return imagestore.NewFileStore(env.ReceiptDir)
	case "drive":
		return imagestore.NewDriveStore(ctx, env.DriveFolderID, env.GoogleCredentialsFile)
	default:
		return nil, nil
	}
}

func openRecognizer(ctx context.Context, env *config.Config, logger *logrus.Logger) (ocr.Recognizer, error) {
	if env.OCRProvider != "vision" {
		return ocr.Unavailable{}, nil
	}

	vision, err := ocr.NewVisionRecognizer(ctx, env.GoogleCredentialsFile)
	if err != nil {
		return nil, err
	}

	var cache ocr.Cache
	if env.RedisAddress != "" {
		cache = ocr.NewRedisCache(redis.NewClient(&redis.Options{
			Addr:     env.RedisAddress,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		}), env.OCRCacheTTL)
	} else {
		lru, err := ocr.NewLRUCache(env.OCRCacheSize, env.OCRCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("create ocr cache: %w", err)
		}
		cache = lru
	}

	return ocr.NewCachedRecognizer(vision, cache, logger), nil
}

func openPublisher(env *config.Config) (events.Publisher, error) {
	if env.AMQPURL == "" {
		return events.NoopPublisher{}, nil
	}
	return events.NewAMQPPublisher(env.AMQPURL, env.AMQPExchange)
}
