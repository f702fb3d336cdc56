package controllers

import (
	"github.com/Aravind-813/GigSphere/chat"
	"github.com/Aravind-813/GigSphere/config"
	"github.com/Aravind-813/GigSphere/gateway"
	"github.com/Aravind-813/GigSphere/notifications"
	"github.com/Aravind-813/GigSphere/repository"
	"github.com/Aravind-813/GigSphere/services"
	"github.com/Aravind-813/GigSphere/stats"
	"github.com/Aravind-813/GigSphere/storage"
	"github.com/Aravind-813/GigSphere/utils"
)

var (
	orderService     *services.OrderService
	settlementEngine *services.SettlementEngine
	refundEngine     *services.RefundEngine
	paymentGateway   *gateway.RazorpayGateway
	chatService      *chat.Service
	notifier         *notifications.Notifier
	catalog          *repository.ServiceCatalog
	payoutDetails    *repository.PayoutDetailsRepository
	payments         *repository.PaymentRepository
	deliveryStore    *storage.DeliveryStore
)

// InitServices wires the service layer onto the shared database connection.
// Must run after config.ConnectDatabase.
func InitServices(cfg *config.Config) {
	db := config.DB

	orders := repository.NewOrderRepository(db)
	deliveries := repository.NewDeliveryRepository(db)
	payments = repository.NewPaymentRepository(db)
	payoutDetails = repository.NewPayoutDetailsRepository(db)
	catalog = repository.NewServiceCatalog(db)

	paymentGateway = gateway.NewRazorpayGateway(cfg.RazorpayKey, cfg.RazorpaySecret)
	chatService = chat.NewService(db)
	statsService := stats.NewService(db)

	var email *notifications.EmailConfig
	if cfg.SMTPHost != "" {
		email = &notifications.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}
	}
	notifier = notifications.NewNotifier(db, email)

	settlementEngine = services.NewSettlementEngine(payments, payoutDetails, paymentGateway, notifier)
	refundEngine = services.NewRefundEngine(payments, paymentGateway)
	orderService = services.NewOrderService(
		orders, deliveries, payments, catalog,
		settlementEngine, refundEngine,
		chatService, notifier, statsService,
	)

	if cfg.MinioEndpoint != "" {
		store, err := storage.NewDeliveryStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			utils.LogError("Delivery file store unavailable: %v", err)
		} else {
			deliveryStore = store
		}
	}
}

// OrderService exposes the wired state machine for the deadline sweeper.
func OrderService() *services.OrderService {
	return orderService
}
