package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "pfas-demo/internal/app"
	"pfas-demo/internal/cache"
	"pfas-demo/internal/config"
	"pfas-demo/internal/ingest"
	"pfas-demo/internal/model"
	mysqlClient "pfas-demo/internal/platform/mysql"
	rabbitmqClient "pfas-demo/internal/platform/rabbitmq"
	redisClient "pfas-demo/internal/platform/redis"
	"pfas-demo/internal/repository"
	"pfas-demo/internal/repository/memory"
	"pfas-demo/internal/seed"
	"pfas-demo/internal/worker"
)

// Check is a named dependency check reported by /healthz.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Stores struct {
	Documents appsvc.DocumentStore
	Chemicals appsvc.ChemicalStore
	Users     appsvc.UserStore
	Messages  appsvc.MessageStore
}

type Services struct {
	Auth      *appsvc.AuthService
	Uploads   *appsvc.UploadService
	Documents *appsvc.DocumentService
	Chemicals *appsvc.ChemicalService
	Stats     *appsvc.StatsService
	Chat      *appsvc.ChatService
}

type App struct {
	Config   *config.Config
	Stores   Stores
	Services Services
	Pipeline *ingest.Pipeline
	Checks   []Check

	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	Publisher     *rabbitmqClient.MessagePublisher
	MessageWorker *worker.MessagePersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig builds the application graph. External backends are only
// dialled when configured; everything else runs in memory.
func NewWithConfig(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{Config: cfg, StartedAt: time.Now()}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	data, err := seed.Load(cfg.Seed.Path)
	if err != nil {
		return nil, err
	}

	if err := a.openStores(ctx); err != nil {
		return nil, err
	}
	if err := a.seedStores(data); err != nil {
		return nil, err
	}

	var historyCache appsvc.HistoryCache
	if cfg.Redis.Addr != "" {
		a.Redis, err = redisClient.New(ctx, redisClient.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		hc := cache.NewHistoryCache(
			a.Redis,
			time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
			time.Duration(cfg.Redis.HistoryDirtyTTLSeconds)*time.Second,
		)
		historyCache = hc
		a.Checks = append(a.Checks, Check{Name: "redis", Ping: hc.Ping})
	}

	var publisher appsvc.AsyncMessagePublisher = appsvc.NewStorePublisher(a.Stores.Messages)
	if cfg.RabbitMQ.URL != "" {
		queue := cfg.RabbitMQ.MessagePersistQueue
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, queue)
		if err != nil {
			return nil, err
		}
		a.MessageWorker = worker.NewMessagePersistWorker(a.MQConn, a.Stores.Messages, queue)
		if err := a.MessageWorker.Start(context.WithoutCancel(ctx)); err != nil {
			return nil, fmt.Errorf("start message worker failed: %w", err)
		}
		a.Publisher = rabbitmqClient.NewMessagePublisher(a.MQConn, queue)
		publisher = a.Publisher
		a.Checks = append(a.Checks, Check{Name: "rabbitmq", Ping: a.Publisher.Ping})
	}

	a.Pipeline = ingest.NewPipeline(ingest.Options{
		TickInterval: cfg.TickInterval(),
		MinStep:      cfg.Ingest.MinStep,
		MaxStep:      cfg.Ingest.MaxStep,
		OnComplete: func(task model.UploadTask) {
			slog.Info("upload ready for review", "task_id", task.ID, "name", task.DisplayName)
		},
	})

	rules := make([]appsvc.KeywordRule, 0, len(data.ChatRules))
	for _, r := range data.ChatRules {
		rules = append(rules, appsvc.KeywordRule{Keywords: r.Keywords, Reply: r.Reply})
	}

	a.Services = Services{
		Auth: appsvc.NewAuthService(
			a.Stores.Users,
			cfg.Auth.JWTSecret,
			time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
		),
		Uploads:   appsvc.NewUploadService(a.Pipeline, a.Stores.Documents, a.Stores.Chemicals),
		Documents: appsvc.NewDocumentService(a.Stores.Documents),
		Chemicals: appsvc.NewChemicalService(a.Stores.Chemicals),
		Stats:     appsvc.NewStatsService(a.Stores.Documents, a.Stores.Chemicals, a.Pipeline),
		Chat: appsvc.NewChatService(
			a.Stores.Messages,
			publisher,
			historyCache,
			appsvc.NewKeywordResponder(rules, data.FallbackReply),
		),
	}

	for _, u := range data.Users {
		if err := a.Services.Auth.EnsureUser(appsvc.RegisterInput{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
		}); err != nil {
			return nil, fmt.Errorf("seed user %s failed: %w", u.Username, err)
		}
	}

	slog.Info("application ready",
		"store", cfg.Store.Driver,
		"redis", cfg.Redis.Addr != "",
		"rabbitmq", cfg.RabbitMQ.URL != "",
		"documents", len(data.Documents),
		"chemicals", len(data.Chemicals),
	)
	return a, nil
}

func (a *App) openStores(ctx context.Context) error {
	if a.Config.Store.Driver != config.StoreDriverMySQL {
		a.Stores = Stores{
			Documents: memory.NewDocumentRepository(),
			Chemicals: memory.NewChemicalRepository(),
			Users:     memory.NewUserRepository(),
			Messages:  memory.NewMessageRepository(),
		}
		return nil
	}

	db, err := mysqlClient.New(ctx, a.Config.MySQLDSN(),
		&model.Document{}, &model.ChemicalRecord{}, &model.User{}, &model.Message{})
	if err != nil {
		return err
	}
	a.MySQL = db
	a.Stores = Stores{
		Documents: repository.NewDocumentRepository(db),
		Chemicals: repository.NewChemicalRepository(db),
		Users:     repository.NewUserRepository(db),
		Messages:  repository.NewMessageRepository(db),
	}
	a.Checks = append(a.Checks, Check{
		Name: "mysql",
		Ping: func(ctx context.Context) error { return mysqlClient.Ping(ctx, db) },
	})
	return nil
}

type documentSeeder interface {
	Seed(docs []model.Document) error
}

type chemicalSeeder interface {
	Seed(records []model.ChemicalRecord) error
}

// seedStores inserts mock rows that are not already present.
func (a *App) seedStores(data *seed.Data) error {
	if s, ok := a.Stores.Documents.(documentSeeder); ok {
		if err := s.Seed(data.Documents); err != nil {
			return fmt.Errorf("seed documents failed: %w", err)
		}
	}
	if s, ok := a.Stores.Chemicals.(chemicalSeeder); ok {
		if err := s.Seed(data.Chemicals); err != nil {
			return fmt.Errorf("seed chemicals failed: %w", err)
		}
	}
	return nil
}

// Close stops the upload timers first so no goroutine outlives the stores.
func (a *App) Close() error {
	var errs []error
	if a.Pipeline != nil {
		a.Pipeline.Close()
	}
	if a.MessageWorker != nil {
		a.MessageWorker.Close()
	}
	if a.Publisher != nil {
		errs = append(errs, a.Publisher.Close())
	}
	if a.MQConn != nil && !a.MQConn.IsClosed() {
		errs = append(errs, a.MQConn.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.MySQL != nil {
		errs = append(errs, mysqlClient.Close(a.MySQL))
	}
	return errors.Join(errs...)
}
