package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	catalogApp "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/application"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	catalogEvents "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/infra/inbound/events"
	catalogHttp "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/infra/inbound/http"
	catalogMongo "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/infra/outbound/db/mongodb"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/infra/outbound/db/relational"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/config"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/analytics"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/analytics/clickhouse"
	infraCache "github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/cache"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/audited"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/gormrepo"
	infraEvents "github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/events"
	infraRelayer "github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/relayer"
	"github.com/kast7n/PurrfectMatchPublic-sub003/pkg/logger"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	sharedBus "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/bus"
	sharedCache "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/cache"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API, the outbox relayer and the event consumers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	log := logger.Logger()
	g, gctx := errgroup.WithContext(ctx)

	// ---------------- DB ----------------
	db, err := gormrepo.Open(cfg.DB.Driver, cfg.DB.DSN, log)
	if err != nil {
		return err
	}
	if err := relational.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// ------------- Query log --------------
	var recorder sharedDomain.QueryRecorder
	if cfg.ClickHouse.Addr != "" {
		repo, err := clickhouse.NewQueryLogRepo(cfg.ClickHouse.Addr, cfg.ClickHouse.Database, cfg.ClickHouse.User, cfg.ClickHouse.Password)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, registro de consultas desactivado", zap.Error(err))
		} else {
			defer repo.Close()
			if err := repo.InitSchema(ctx); err != nil {
				return err
			}
			batch := analytics.NewBatchRecorder(repo, 10*cfg.ClickHouse.BatchSize, cfg.ClickHouse.BatchSize, cfg.ClickHouse.Interval, log)
			g.Go(func() error {
				batch.Start(gctx)
				return nil
			})
			recorder = batch
		}
	}

	repos := relational.NewRepositories(db, recorder)
	if cfg.Posts.Store == config.PostsStoreMongo {
		store, closeFn, err := openPostStore(ctx)
		if err != nil {
			return err
		}
		defer closeFn()
		repos.Posts = audited.Wrap[catalogDomain.Post](store, catalogApp.EntityPost, recorder)
		log.Info("📄 Posts servidos desde MongoDB", zap.String("database", cfg.Mongo.Database))
	}

	// ---------------- Cache ----------------
	cacheInstance := newCache(ctx, log)

	// --------------- Servicio --------------
	catalogService := catalogApp.NewCatalogService(repos, cacheInstance, cfg.CacheTTLSeconds(), log)
	petService := catalogApp.NewPetService(relational.NewPetRepo(db), cacheInstance, cfg.CacheTTLSeconds(), log)

	// ---------------- Events ---------------
	petConsumer := catalogEvents.NewPetConsumer(cacheInstance, log)

	var publisher sharedBus.EventPublisher
	if cfg.Kafka.Enabled {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.Kafka.Brokers))

		kafkaPublisher := infraEvents.NewKafkaPublisher(infraEvents.NewKafkaWriter(cfg.Kafka.Brokers, catalogDomain.PetTopic), log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher

		reader := infraEvents.NewKafkaReader(cfg.Kafka.Brokers, catalogDomain.PetTopic, cfg.Kafka.GroupID)
		infraEvents.NewConsumerAdapter(reader, petConsumer, log).Start(gctx)
	} else {
		log.Info("⚡️Usando bus de eventos en memoria (canales de Go)")

		bus := infraEvents.NewInMemoryEventBus(catalogDomain.PetTopic)
		defer bus.Close()
		bus.Subscribe(gctx, 64, petConsumer)
		publisher = bus
	}

	// ------------ Outbox Worker ------------
	worker := infraRelayer.NewOutboxWorker(gormrepo.NewOutboxRepo(db), publisher, catalogDomain.NewEventRegistry(), cfg.Outbox.Period, cfg.Outbox.Limit, log)
	g.Go(func() error {
		worker.Start(gctx)
		return nil
	})

	// ---------------- HTTP ----------------
	router := gin.New()
	router.Use(gin.Recovery(), cors.New(corsConfig(cfg.HTTP.AllowOrigins)))
	catalogHttp.RegisterCatalogRoutes(router,
		catalogHttp.NewCatalogHandler(catalogService),
		catalogHttp.NewPetHandler(petService),
	)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{Addr: ":" + cfg.HTTP.Port, Handler: router}
	g.Go(func() error {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newCache usa Redis si responde; si no, una caché en memoria.
func newCache(ctx context.Context, log *zap.Logger) sharedCache.Cache {
	ttl := cfg.Cache.TTL
	if cfg.Redis.Addr == "" {
		return infraCache.NewInMemoryCache(ttl, 3*ttl)
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		return infraCache.NewInMemoryCache(ttl, 3*ttl)
	}
	log.Info("✅ Redis conectado, cache habilitado")
	return infraCache.NewRedisCache(rdb, ttl)
}

func openPostStore(ctx context.Context) (*catalogMongo.PostStore, func(), error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongoDB: %w", err)
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }

	store, err := catalogMongo.NewPostStore(ctx, client, cfg.Mongo.Database)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
