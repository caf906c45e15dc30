package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanosuguru/fit365-classes/internal/api/handler"
	"github.com/sanosuguru/fit365-classes/internal/api/router"
	"github.com/sanosuguru/fit365-classes/internal/application"
	"github.com/sanosuguru/fit365-classes/internal/config"
	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
	"github.com/sanosuguru/fit365-classes/internal/infrastructure/email"
	"github.com/sanosuguru/fit365-classes/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/fit365-classes/internal/infrastructure/redis"
	"github.com/sanosuguru/fit365-classes/internal/notification"
	"github.com/sanosuguru/fit365-classes/internal/pkg/logger"
	"github.com/sanosuguru/fit365-classes/internal/pkg/metrics"
	"github.com/sanosuguru/fit365-classes/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("設定の読み込みに失敗", zap.Error(err))
	}
	logger.Init(cfg.Env)
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg); err != nil {
		logger.Fatal("サーバーエラー", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	m := metrics.New()

	// Redis 接続
	redisClient, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	err = redisinfra.Ping(ctx, redisClient)
	cancel()
	if err != nil {
		return err
	}
	logger.Info("Redis に接続しました", zap.String("addr", redisClient.Options().Addr), zap.Bool("tls", redisClient.Options().TLSConfig != nil))

	// リポジトリ
	st, err := openStores(cfg, redisClient)
	if err != nil {
		return err
	}
	defer st.close()
	classStore, registrationStore := st.classes, st.registrations
	lockManager := redisinfra.NewLockManager(redisClient, redisinfra.DefaultLockOptions)

	// メール
	sender := email.NewResendSender(cfg.Email.ResendAPIKey)
	if cfg.Email.ResendAPIKey == "" {
		logger.Warn("RESEND_API_KEY が未設定のためメールは送信されません")
	}
	notifier := notification.NewEmailNotifier(sender, cfg.Email, m)

	// サービス
	classService := application.NewClassService(classStore, registrationStore, lockManager, m)
	rsvpService := application.NewRSVPService(classStore, registrationStore, notifier, lockManager, m)
	contactService := application.NewContactService(notifier)
	guard := application.NewAdminSessionGuard(cfg.Admin)

	e := router.New(cfg, router.Handlers{
		Class:   handler.NewClassHandler(classService),
		RSVP:    handler.NewRSVPHandler(rsvpService),
		Contact: handler.NewContactHandler(contactService),
		Admin:   handler.NewAdminHandler(classService, guard),
		Health:  handler.NewHealthHandler(st.ping),
	}, guard, m)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// バックグラウンドワーカー
	collector := worker.NewClassStatsCollector(classStore, m, cfg.Worker.StatsInterval)
	go collector.Start(context.Background())

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("サーバーを起動します", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		collector.Stop()
		return err
	case sig := <-quit:
		logger.Info("サーバーをシャットダウンしています...", zap.String("signal", sig.String()))
	}

	collector.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// 送信中の通知メールを待つ
	rsvpService.Wait()

	logger.Info("サーバーが正常にシャットダウンしました")
	return nil
}

// stores は選択したドライバーのリポジトリと疎通確認
type stores struct {
	classes       class.Repository
	registrations registration.Repository
	ping          handler.StoreChecker
	close         func()
}

func openStores(cfg *config.Config, redisClient *goredis.Client) (*stores, error) {
	pingRedis := func(ctx context.Context) error {
		return redisinfra.Ping(ctx, redisClient)
	}

	if cfg.Store.Driver != config.StoreDriverPostgres {
		return &stores{
			classes:       redisinfra.NewClassStore(redisClient),
			registrations: redisinfra.NewRegistrationStore(redisClient),
			ping:          pingRedis,
			close:         func() {},
		}, nil
	}

	db, err := postgres.NewConnection(&cfg.Store.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(db.DB); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("PostgreSQL に接続しました")

	return &stores{
		classes:       postgres.NewClassRepository(db),
		registrations: postgres.NewRegistrationRepository(db),
		// ロックは Redis のままなので両方を確認する
		ping: func(ctx context.Context) error {
			if err := postgres.Ping(ctx, db); err != nil {
				return err
			}
			return pingRedis(ctx)
		},
		close: func() { db.Close() },
	}, nil
}
