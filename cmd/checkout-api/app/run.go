package app

import (
	"context"
	"database/sql"

	"github.com/topupid/checkout-api/configs"
	"github.com/topupid/checkout-api/internal/adapter/cache"
	"github.com/topupid/checkout-api/internal/adapter/gateway"
	httpadapter "github.com/topupid/checkout-api/internal/adapter/http"
	"github.com/topupid/checkout-api/internal/adapter/http/middleware"
	"github.com/topupid/checkout-api/internal/adapter/kafka"
	"github.com/topupid/checkout-api/internal/adapter/queue"
	"github.com/topupid/checkout-api/internal/adapter/repo"
	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/logging"
	"github.com/topupid/checkout-api/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.New("app")

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// repos
	catalog := repo.NewMySQLCatalogRepo(db)
	channels := repo.NewMySQLChannelRepo(db)
	promos := repo.NewMySQLPromoRepo(db)
	usage := repo.NewMySQLUsageRepo(db)
	tokens := repo.NewMySQLTokenRepo(db)
	orders := repo.NewMySQLOrderRepo(db)
	balances := repo.NewMySQLBalanceRepo(db)
	outbox := repo.NewMySQLOutboxRepo(db)
	store := repo.NewMySQLCommitStore(db, tokens, usage, orders, balances, outbox)

	// caches: registry reads go through Redis, promo usage never does
	cachedPromos := cache.NewCachedPromoRepo(promos, rdb, cfg.Redis.RegistryTTL)
	cachedChannels := cache.NewCachedChannelRepo(channels, rdb, cfg.Redis.RegistryTTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	orderCache := cache.NewRedisOrderCache(rdb, cfg.Redis.RegistryTTL)

	// messaging
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	bg, stopBg := context.WithCancel(context.Background())

	publisher := queue.NewOutboxPublisher(outbox, producer, cfg.Outbox.Interval)
	go publisher.Run(bg)

	gw := gateway.NewHTTPFulfillment(cfg.Fulfillment.BaseURL, cfg.Fulfillment.APIKey)
	if err := setupQueue(ch, gw); err != nil {
		stopBg()
		return nil, nil, err
	}
	if err := setupKafkaListener(bg, cfg, orders, orderCache); err != nil {
		stopBg()
		return nil, nil, err
	}

	// usecases
	inquiryUC := usecase.NewCreateInquiry(catalog, cachedChannels, cachedPromos, usage, tokens, idem, domain.TokenTTL)
	validateUC := usecase.NewValidatePromo(catalog, cachedPromos, usage)
	commitUC := usecase.NewCommitOrder(tokens, catalog, cachedChannels, cachedPromos, store, orderCache)

	h := httpadapter.NewCheckoutHandler(inquiryUC, validateUC, commitUC, orders, orderCache)
	th := httpadapter.NewTokenHandler(cfg)
	auth := middleware.NewAuthz(cfg)
	router := httpadapter.NewRouter(h, th, auth)

	log.Info("checkout-api wired", "addr", cfg.App.HTTPAddr)

	cleanup := func() {
		stopBg()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupQueue(ch *amqp.Channel, gw queue.FulfillmentGateway) error {
	h := queue.NewFulfillmentHandler(gw)

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register("order.committed.q", queue.JSONHandler[usecase.OrderCommittedMsg]{HandleFunc: h.HandleCommitted})

	return router.Start()
}

func setupKafkaListener(ctx context.Context, cfg configs.Config, orders usecase.OrderRepo, oc usecase.OrderCache) error {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return err
	}

	h := kafka.NewPaymentStatusHandler(orders, oc)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.TopicPayments}, h.Handle)
	consumer.Logger = logging.New("kafka")

	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logging.New("kafka").Error("consumer stopped", "err", err.Error())
		}
	}()
	return nil
}
