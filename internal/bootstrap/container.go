package bootstrap

import (
	"context"
	"log"
	"time"

	"fixzit-be/internal/config"
	"fixzit-be/internal/controller"
	"fixzit-be/internal/pkg/logger"
	"fixzit-be/internal/repository/unitofwork"
	"fixzit-be/internal/service"
	"fixzit-be/pkg/audit"
	pktNats "fixzit-be/pkg/nats"
	"fixzit-be/pkg/reporting"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// workOrderTopic is the in-process bus topic between the work order
// service and the event fanout consumer.
const workOrderTopic = "work_order.created"

type Container struct {
	// Controllers
	WorkOrderController controller.IWorkOrderController
	PropertyController  controller.IPropertyController
	InvoiceController   controller.IInvoiceController
	ReportController    controller.IReportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// The bypass audit trail gets its own file so it never mixes with
	// operational noise and survives log rotation of the app log.
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
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
		log.Printf("[WARN] Failed to connect to Redis: %v. Report caching falls back to in-process", err)
		rdb = nil
	}

	auditPublisher := audit.NewNatsPublisher(natsPub, auditLogger)

	// 3. Services
	publisherService := service.NewPublisherService(workOrderTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		workOrderTopic,
		uowFactory,
		auditPublisher,
		sysLogger,
	)

	workOrderService := service.NewWorkOrderService(uowFactory, publisherService)
	propertyService := service.NewPropertyService(uowFactory)
	invoiceService := service.NewInvoiceService(uowFactory, auditPublisher)

	// Durable audit trail worker
	if natsSub != nil {
		auditTrail := service.NewAuditTrailService(natsSub, auditLogger)
		if err := auditTrail.Start(); err != nil {
			log.Printf("[WARN] Failed to start audit trail consumer: %v", err)
		}
	}

	aggregator := reporting.NewAggregator(
		sysLogger,
		rdb,
		auditPublisher,
		time.Duration(cfg.Report.CacheTTLSeconds)*time.Second,
	)
	reportService := service.NewReportService(uowFactory, aggregator)

	// 4. Controllers
	return &Container{
		WorkOrderController: controller.NewWorkOrderController(workOrderService),
		PropertyController:  controller.NewPropertyController(propertyService),
		InvoiceController:   controller.NewInvoiceController(invoiceService),
		ReportController:    controller.NewReportController(reportService, auditLogger),

		ConsumerService: consumerService,
	}
}
