package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-ops/domain/repository"
	"content-ops/infrastructure/cache"
	instagramclient "content-ops/infrastructure/clients/instagram"
	reihtvclient "content-ops/infrastructure/clients/reihtv"
	tiktokclient "content-ops/infrastructure/clients/tiktok"
	youtubeclient "content-ops/infrastructure/clients/youtube"
	"content-ops/infrastructure/configuration"
	"content-ops/infrastructure/events"
	"content-ops/infrastructure/logger"
	"content-ops/infrastructure/media"
	"content-ops/infrastructure/persistence"
	"content-ops/infrastructure/pubsub"
	"content-ops/infrastructure/realtime"
	"content-ops/infrastructure/servicebus"
	httpHandler "content-ops/interfaces/http"
	"content-ops/interfaces/middleware"
	"content-ops/server"
	"content-ops/usecase"

	"github.com/gin-gonic/gin"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	relationalDb, vendor, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Relational database initialization failed")
		os.Exit(1)
	}
	logger.GetLogger().WithField("vendor", vendor).Info("Relational database connected")

	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err == nil {
		err = persistence.PingMongo(ctx, mongoDb)
	}
	if err != nil {
		// The video library is the system of record; nothing works without it.
		logger.GetLogger().WithField("error", err).Error("MongoDB not available")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")

	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Google Pub/Sub not available - continuing without Pub/Sub fan-out")
		pubSubClient = nil
	}

	azServiceBusClient, err := servicebus.NewServiceBus(ctx, configuration.C.ServiceBus.Namespace)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without Service Bus fan-out")
		azServiceBusClient = nil
	}

	redisClient := cache.NewRedisClient(
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Password,
		0,
	)
	if redisClient != nil {
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - media URL caching disabled")
			redisClient = nil
		} else {
			logger.GetLogger().Info("Redis client initialized successfully.")
		}
	}

	// Schema and index setup
	mongoDbName := configuration.C.Database.Mongo.Name
	if err := persistence.EnsureVideoIndexes(ctx, mongoDb, mongoDbName); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed ensuring video indexes")
	}
	if vendor == "mssql" {
		if err := persistence.EnsurePublicationSchemaMSSQL(relationalDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring publication schema")
		}
	} else {
		if err := persistence.EnsurePublicationSchema(relationalDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring publication schema")
		}
	}

	// Repository wiring: use MSSQL in production, otherwise PostgreSQL.
	var userRepository repository.IUser
	var publicationRepository repository.IPublication
	if vendor == "mssql" {
		userRepository = persistence.NewUserRepositoryMSSQL(relationalDb)
		publicationRepository = persistence.NewPublicationRepositoryMSSQL(relationalDb)
	} else {
		userRepository = persistence.NewUserRepository(relationalDb)
		publicationRepository = persistence.NewPublicationRepository(relationalDb)
	}
	videoRepository := persistence.NewVideoRepository(mongoDb, mongoDbName)

	// Script store is optional; the dashboard works without it.
	var scriptHandler httpHandler.IScriptHandler
	if configuration.C.Database.MySql.Host != "" {
		scriptDb, err := persistence.NewScriptDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("MySQL not available - script tracking disabled")
		} else {
			if err := persistence.AutoMigrateScripts(scriptDb); err != nil {
				logger.GetLogger().WithField("error", err).Error("failed migrating script schema")
			}
			scriptRepository := persistence.NewScriptRepository(scriptDb)
			scriptHandler = httpHandler.NewScriptHandler(usecase.NewScriptUsecase(scriptRepository))
		}
	} else {
		logger.GetLogger().Info("MySQL not configured; script tracking disabled")
	}

	// Media resolution with optional Redis-backed URL cache
	mediaCache := cache.NewMediaCache(redisClient, time.Duration(configuration.C.Media.ResolveTTLMinutes)*time.Minute)
	mediaResolver := media.NewResolver(configuration.C.Media.CloudinaryBaseURL, configuration.C.Media.CloudName, mediaCache)

	// Outcome event fan-out; both backends are optional.
	var outcomePubSub pubsub.IOutcomePubSub
	if pubSubClient != nil {
		outcomePubSub = pubsub.NewOutcomePubSub(pubSubClient)
	}
	var outcomeServiceBus servicebus.IOutcomeServiceBus
	if azServiceBusClient != nil {
		outcomeServiceBus = servicebus.NewOutcomeServiceBus(azServiceBusClient)
	}
	outcomeEmitter := events.NewOutcomeEmitter(
		outcomePubSub, configuration.C.Pubsub.Topic,
		outcomeServiceBus, configuration.C.ServiceBus.Queue,
	)

	credentialSource := configuration.NewCredentialSource()
	youtubeClient := youtubeclient.NewYouTubeClient()
	platformClients := []repository.IPlatformClient{
		youtubeClient,
		instagramclient.NewInstagramClient(""),
		tiktokclient.NewTikTokClient(""),
		reihtvclient.NewReihTVClient(configuration.C.Platforms.ReihTV.APIURL),
	}
	for _, c := range platformClients {
		creds, ok := credentialSource.GetCredentials(c.Platform())
		configured := ok && len(creds.MissingFields(c.Platform())) == 0
		logger.GetLogger().WithFields(map[string]interface{}{
			"platform":   c.Platform(),
			"configured": configured,
		}).Info("Platform client initialized")
	}

	publishHub := realtime.NewPublishHub()
	publishUsecase := usecase.NewPublishUsecase(
		videoRepository,
		publicationRepository,
		mediaResolver,
		credentialSource,
		platformClients,
		publishHub,
		outcomeEmitter,
	)

	userHandler := httpHandler.NewUserHandler(usecase.NewUserUsecase(userRepository))
	videoHandler := httpHandler.NewVideoHandler(usecase.NewVideoUsecase(videoRepository))
	publishHandler := httpHandler.NewPublishHandler(publishUsecase)
	youtubeAuthHandler := httpHandler.NewYouTubeAuthHandler(youtubeClient, credentialSource)

	router := server.InitiateRouter(userHandler, videoHandler, publishHandler, scriptHandler, youtubeAuthHandler, userRepository)

	// SSE endpoint for real-time publish status; needs the auth middleware so
	// user_id is populated on the stream request.
	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))
	api.GET("/publish/stream", func(c *gin.Context) { publishHub.Serve(c) })

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
		} else {
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateDatabase opens the relational store holding user accounts and the
// publication audit trail. Production runs on Azure SQL; everything else on
// PostgreSQL. DB_VENDOR=mssql forces the MSSQL path for local testing.
func InitiateDatabase() (*sql.DB, string, error) {
	env := os.Getenv("ENV")
	if v := os.Getenv("DB_VENDOR"); v == "mssql" {
		mssql, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot connect to MSSQL (DB_VENDOR=mssql)")
			return nil, "", err
		}
		return mssql, "mssql", nil
	}
	if env == "production" || env == "prod" {
		mssql, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot connect to MSSQL (production)")
			return nil, "", err
		}
		return mssql, "mssql", nil
	}

	postgres, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to PostgreSQL")
		return nil, "", err
	}
	return postgres, "postgres", nil
}
