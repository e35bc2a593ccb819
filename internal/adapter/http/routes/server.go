package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"brcargo_cotacoes/internal/adapter/http/middleware"
	"brcargo_cotacoes/internal/domain/validation"
	"brcargo_cotacoes/internal/infrastructure/config"
	"brcargo_cotacoes/internal/infrastructure/metrics"
	redisinfra "brcargo_cotacoes/internal/infrastructure/redis"
	"brcargo_cotacoes/internal/infrastructure/seed"
	"brcargo_cotacoes/internal/usecase"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run wires the configured backends and serves HTTP until ctx is done, then
// drains requests and pending notifications.
func Run(ctx context.Context, cfg config.Configuration, log *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	if err := validation.RegisterBindingTags(); err != nil {
		return err
	}

	loc, err := usecase.LoadBusinessLocation(cfg.Quotes.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid business time zone: %w", err)
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Warn("failed to close storage", zap.Error(err))
		}
	}()

	if cfg.SeedFile != "" {
		data, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := seed.Apply(ctx, data, store.users, store.companies); err != nil {
			return err
		}
		log.Info("seed applied", zap.Int("users", len(data.Users)), zap.Int("companies", len(data.Companies)))
	}

	sequence := store.sequence
	var publisher interfaces.IEventPublisher
	if cfg.Redis.URL != "" {
		client, err := redisinfra.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()

		publisher = redisinfra.NewEventPublisher(client)
		if cfg.Quotes.Sequence == config.SequenceRedis {
			sequence = redisinfra.NewQuoteSequence(client, cfg.Redis.SequencePrefix, usecase.NewStoreQuoteSequence(store.quotes))
		}
	}

	m := metrics.New()
	inbox := usecase.NewNotificationUseCase(store.notifications, store.users, publisher, log.Named("notifications"))
	notifier := usecase.NewAsyncQuoteNotifier(inbox, cfg.Quotes.NotifyTimeout, log.Named("notifier"))
	quotes := usecase.NewQuoteUseCase(
		store.quotes,
		store.users,
		store.companies,
		usecase.NewQuoteNumberer(sequence, loc),
		usecase.WithNotifier(notifier),
		usecase.WithTransitionMetrics(m),
		usecase.WithLogger(log.Named("quotes")),
		usecase.WithNumberAttempts(cfg.Quotes.NumberAttempts),
		usecase.WithTransitionAttempts(cfg.Quotes.TransitionAttempts),
	)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		limiter.StartJanitor(ctx, 2*time.Minute)
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: NewRouter(Dependencies{
			Quotes:        quotes,
			Notifications: inbox,
			Users:         store.users,
			Location:      loc,
			Logger:        log,
			Metrics:       m,
			RateLimiter:   limiter,
			CORSOrigins:   cfg.HTTP.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to startup the application: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	notifier.Wait()
	return nil
}
