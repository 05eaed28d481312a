package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bigbadbobbo/foodtruck-api/configs"
	"github.com/bigbadbobbo/foodtruck-api/jobs"
	"github.com/bigbadbobbo/foodtruck-api/middlewares"
	"github.com/bigbadbobbo/foodtruck-api/pkg/events"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geo"
	"github.com/bigbadbobbo/foodtruck-api/pkg/geocoder"
	"github.com/bigbadbobbo/foodtruck-api/pkg/upload"
	"github.com/bigbadbobbo/foodtruck-api/routes"
	"github.com/bigbadbobbo/foodtruck-api/services"
	"github.com/bigbadbobbo/foodtruck-api/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	if err := configs.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	opts := services.Options{
		Geocoder:  geocoder.New(cfg.GeocoderURL, cfg.GeocoderAPIKey, cfg.GeocoderRPS),
		MaxUpload: cfg.MaxFileUpload,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
		Log:       log,
	}

	if cfg.RedisAddr != "" {
		idx := geo.NewRedisIndex(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisGeoKey)
		if err := idx.Ping(ctx); err != nil {
			log.WithError(err).Warn("redis unavailable, radius search falls back to a table scan")
			_ = idx.Close()
		} else {
			defer idx.Close()
			opts.Index = idx
		}
	}

	if cfg.S3Bucket != "" {
		opts.Photos, err = upload.NewS3Store(upload.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	} else {
		opts.Photos, err = upload.NewDiskStore(cfg.FileUploadPath)
	}
	if err != nil {
		return fmt.Errorf("photo store: %w", err)
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer pub.Close()
		opts.Publisher = pub
	}

	hub := ws.NewHub(log)
	go hub.Run()
	defer hub.Stop()
	opts.Notifier = hub

	reg := services.New(db, opts)

	if opts.Index != nil {
		n, err := reg.FoodTrucks.ReindexAll(ctx)
		if err != nil {
			log.WithError(err).Warn("geo reindex failed")
		} else {
			log.WithField("trucks", n).Info("geo index rebuilt")
		}
	}

	reconciler, err := jobs.NewReconciler(cfg.ReconcileSchedule, reg.Rollup, 10*time.Minute, log)
	if err != nil {
		return fmt.Errorf("reconcile schedule: %w", err)
	}
	reconciler.Start()
	defer reconciler.Stop()

	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanup(10*time.Minute, ctx.Done())

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middlewares.RequestLogger(log), gin.Recovery())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(limiter.Handler())
	routes.RegisterRoutes(r, cfg, reg, hub)

	return serveHTTP(ctx, log, ":"+cfg.Port, r)
}

func serveHTTP(ctx context.Context, log *logrus.Logger, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
