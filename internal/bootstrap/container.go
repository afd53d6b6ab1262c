package bootstrap

import (
	"context"
	"log"

	"printmob-be/internal/config"
	"printmob-be/internal/controller"
	"printmob-be/internal/pkg/logger"
	"printmob-be/internal/pkg/mailer"
	"printmob-be/internal/repository/memory"
	"printmob-be/internal/repository/unitofwork"
	"printmob-be/internal/scheduler"
	"printmob-be/internal/service"
	"printmob-be/pkg/ledger"
	"printmob-be/pkg/lock"
	pkgNats "printmob-be/pkg/nats"
	"printmob-be/pkg/payment"
	"printmob-be/pkg/settlement"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	UserController     controller.IUserController
	CampaignController controller.ICampaignController
	PledgeController   controller.IPledgeController
	PaymentController  controller.IPaymentController
	ModelController    controller.IModelController
	OrderController    controller.IOrderController

	// Background workers (exposed for main.go to run)
	ConsumerService  service.IConsumerService
	SettlementWorker *scheduler.SettlementWorker
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. Domain collaborators
	gateway := payment.NewMidtransGateway(payment.Config{
		ServerKey:    cfg.Midtrans.ServerKey,
		IsProduction: cfg.Midtrans.IsProduction,
		FinishURL:    cfg.App.ClientURL,
	}, sysLogger)

	moneyLedger := ledger.NewLedger(sysLogger)
	preferenceCache := memory.NewPreferenceCache()
	locker := lock.NewRedisLocker(rdb)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.EmailTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EmailTopic, emailService, sysLogger)
	notifier := service.NewNotificationService(publisherService, natsPub, sysLogger)

	authService := service.NewAuthService(uowFactory)
	userService := service.NewUserService(uowFactory, moneyLedger)
	campaignService := service.NewCampaignService(uowFactory, gateway, preferenceCache, natsPub, sysLogger)
	pledgeService := service.NewPledgeService(uowFactory, gateway, moneyLedger, natsPub, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, gateway, moneyLedger, sysLogger)
	modelService := service.NewModelService(uowFactory, moneyLedger)
	orderService := service.NewOrderService(uowFactory)

	// Background event worker (printer-side notifications off the bus)
	if natsSub != nil {
		eventWorker := service.NewEventWorkerService(uowFactory, natsSub, publisherService, sysLogger)
		go func() {
			if err := eventWorker.Start(); err != nil {
				log.Printf("[WARN] Failed to start campaign event worker: %v", err)
			}
		}()
	}

	// 5. Settlement jobs
	processor := settlement.NewProcessor(uowFactory, gateway, moneyLedger, notifier, sysLogger)
	settlementWorker := scheduler.NewSettlementWorker(processor, locker, cfg.Jobs.SettlementInterval, sysLogger)

	return &Container{
		AuthController:     controller.NewAuthController(authService),
		UserController:     controller.NewUserController(userService),
		CampaignController: controller.NewCampaignController(campaignService, pledgeService),
		PledgeController:   controller.NewPledgeController(pledgeService),
		PaymentController:  controller.NewPaymentController(paymentService),
		ModelController:    controller.NewModelController(modelService),
		OrderController:    controller.NewOrderController(orderService),

		ConsumerService:  consumerService,
		SettlementWorker: settlementWorker,
	}
}
