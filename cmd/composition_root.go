package cmd

import (
	"fmt"
	"log/slog"
	"time"

	asynqadapter "orders/internal/adapters/out/asynq"
	"orders/internal/adapters/out/catalog"
	"orders/internal/adapters/out/gateway"
	"orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/postgres"
	rediscache "orders/internal/adapters/out/redis"
	"orders/internal/adapters/out/storage"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"

	"github.com/IBM/sarama"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    ports.CatalogClient
	gateway    ports.PaymentGateway
	fileStore  ports.FileStore
	publisher  ports.NotificationPublisher
	queue      ports.SettlementQueue
	calculator services.PriceCalculator
	provider   string
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	producer sarama.SyncProducer,
	redisClient *goredis.Client,
	logger *slog.Logger,
) (CompositionRoot, error) {
	calculator, err := services.NewPriceCalculator(services.DefaultFeeTiers())
	if err != nil {
		return CompositionRoot{}, err
	}

	// empty means the cache's default TTL; anything else must parse
	var gigTTL time.Duration
	if configs.GigCacheTTL != "" {
		gigTTL, err = time.ParseDuration(configs.GigCacheTTL)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("invalid gig cache ttl %q: %w", configs.GigCacheTTL, err)
		}
	}

	var catalogClient ports.CatalogClient = catalog.NewClient(configs.CatalogBaseURL)
	catalogClient = rediscache.NewCachedCatalogClient(catalogClient, redisClient, gigTTL, logger)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalogClient,
		gateway:    gateway.NewClient(configs.GatewayBaseURL, configs.GatewayAPIKey, configs.GatewayWebhookSecret),
		fileStore:  storage.NewClient(configs.StorageBaseURL, configs.StorageAPIKey),
		publisher:  kafka.NewSyncNotificationPublisher(producer),
		queue:      asynqadapter.NewSettlementQueue(asynqadapter.NewClient(configs.RedisAddr)),
		calculator: calculator,
		provider:   configs.PaymentProvider,
	}, nil
}

// Gateway exposes the payment gateway for webhook signature verification.
func (c *CompositionRoot) Gateway() ports.PaymentGateway {
	return c.gateway
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.catalog, c.gateway, c.calculator, c.publisher, c.provider)
}

func (c *CompositionRoot) CreateSubmitRequirementsCommandHandler() commands.SubmitRequirementsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitRequirementsCommandHandler(f, c.fileStore, c.publisher)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverOrderCommandHandler(f, c.fileStore, c.publisher)
}

func (c *CompositionRoot) CreateApproveDeliveryCommandHandler() commands.ApproveDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveDeliveryCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRequestRevisionCommandHandler() commands.RequestRevisionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestRevisionCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.queue, c.publisher)
}

func (c *CompositionRoot) CreateCreateNegotiationCommandHandler() commands.CreateNegotiationCommandHandler {
	var f commands.OrderNegotiationUoWFactory = FuncOrderNegotiationUoWFactory(func() commands.OrderNegotiationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateNegotiationCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateApproveNegotiationCommandHandler() commands.ApproveNegotiationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveNegotiationCommandHandler(f, c.queue, c.publisher)
}

func (c *CompositionRoot) CreateRejectNegotiationCommandHandler() commands.RejectNegotiationCommandHandler {
	var f commands.OrderNegotiationUoWFactory = FuncOrderNegotiationUoWFactory(func() commands.OrderNegotiationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectNegotiationCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateEscalateDisputeCommandHandler() commands.EscalateDisputeCommandHandler {
	var f commands.OrderNegotiationUoWFactory = FuncOrderNegotiationUoWFactory(func() commands.OrderNegotiationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEscalateDisputeCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmChargeCommandHandler() commands.ConfirmChargeCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmChargeCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateConfirmRefundCommandHandler() commands.ConfirmRefundCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmRefundCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyReviewCommandHandler() commands.ApplyReviewCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyReviewCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkLateOrdersCommandHandler() commands.MarkLateOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkLateOrdersCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRefundOrderPaymentsCommandHandler() commands.RefundOrderPaymentsCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefundOrderPaymentsCommandHandler(f, c.gateway)
}

func (c *CompositionRoot) CreateCancelOrderPaymentsCommandHandler() commands.CancelOrderPaymentsCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderPaymentsCommandHandler(f, c.gateway)
}

func (c *CompositionRoot) CreateGetOrdersByPartyQueryHandler() queries.GetOrdersByPartyQueryHandler {
	return queries.NewGetOrdersByPartyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPaymentsByOrderQueryHandler() queries.GetPaymentsByOrderQueryHandler {
	return queries.NewGetPaymentsByOrderQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderNegotiationUoWFactory func() commands.OrderNegotiationUoW

func (f FuncOrderNegotiationUoWFactory) Create() commands.OrderNegotiationUoW {
	return f()
}

type FuncOrderPaymentUoWFactory func() commands.OrderPaymentUoW

func (f FuncOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
