package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/minio/minio-go/v7"
	miniocredentials "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-reader/app/controller"
	"github.com/vibast-solutions/ms-go-reader/app/entity"
	"github.com/vibast-solutions/ms-go-reader/app/provider"
	"github.com/vibast-solutions/ms-go-reader/app/repository"
	"github.com/vibast-solutions/ms-go-reader/app/service"
	"github.com/vibast-solutions/ms-go-reader/app/view"
	"github.com/vibast-solutions/ms-go-reader/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP (Echo) server for the reader service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, readerController, cleanup := mustCreateReaderController()
	defer cleanup()

	e := setupHTTPServer(readerController)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(readerController *controller.ReaderController) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Pre(controller.CanonicalHost())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())

	controller.RegisterRoutes(e, readerController)

	return e
}

func mustCreateReaderController() (*config.Config, *controller.ReaderController, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse Redis URL")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		logrus.WithError(err).Fatal("Failed to ping Redis")
	}

	minioClient, err := minio.New(cfg.Objects.Endpoint, &minio.Options{
		Creds:  miniocredentials.NewStaticV4(cfg.Objects.AccessKey, cfg.Objects.SecretKey, ""),
		Secure: cfg.Objects.UseSSL,
	})
	if err != nil {
		_ = redisClient.Close()
		logrus.WithError(err).Fatal("Failed to create object store client")
	}

	sessionRepo := repository.NewSessionRepository(redisClient)
	objectRepo := repository.NewObjectRepository(minioClient, cfg.Objects.Bucket)

	stripeProvider := provider.NewStripeProvider(provider.StripeConfig{
		SecretKey:   cfg.Stripe.SecretKey,
		APIBaseURL:  cfg.Stripe.APIBaseURL,
		HTTPTimeout: cfg.Stripe.HTTPTimeout,
	})
	providerRegistry := provider.NewRegistry(stripeProvider)

	entitlementService := service.NewEntitlementService(sessionRepo, providerRegistry, cfg.Stripe, cfg.Session)
	accessService := service.NewAccessService(sessionRepo, objectRepo, entity.Book{
		Title:     cfg.Reader.Title,
		PageCount: cfg.Reader.PageCount,
	})

	renderer, err := view.NewRenderer()
	if err != nil {
		_ = redisClient.Close()
		logrus.WithError(err).Fatal("Failed to initialize shell renderer")
	}

	readerController := controller.NewReaderController(entitlementService, accessService, renderer, cfg.Session)

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Redis client")
		}
	}

	return cfg, readerController, cleanup
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return nil
}
