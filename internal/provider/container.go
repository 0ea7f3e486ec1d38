package provider

import (
	"github.com/pizzame/backend/internal/cache"
	"github.com/pizzame/backend/internal/config"
	"github.com/pizzame/backend/internal/logger"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/queue"
	"github.com/pizzame/backend/internal/repository"
	"github.com/pizzame/backend/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CategoryRepo   repository.CategoryRepository
	AllergenRepo   repository.AllergenRepository
	IngredientRepo repository.IngredientRepository
	PizzaRepo      repository.PizzaRepository
	PizzaSizeRepo  repository.PizzaSizeRepository
	CartRepo       repository.CartRepository
	OrderRepo      repository.OrderRepository
	PaymentRepo    repository.PaymentRepository
	DeliveryRepo   repository.DeliveryRepository
	UserRepo       repository.UserRepository
	AddressRepo    repository.AddressRepository

	// Services
	CategoryService   *service.CategoryService
	AllergenService   *service.AllergenService
	IngredientService *service.IngredientService
	PizzaService      *service.PizzaService
	PizzaSizeService  *service.PizzaSizeService
	CartService       *service.CartService
	OrderService      *service.OrderService
	PaymentService    *service.PaymentService
	DeliveryService   *service.DeliveryService
	UserAuthService   *service.UserAuthService
	AddressService    *service.AddressService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.AllergenRepo = repository.NewAllergenRepository(db)
	c.IngredientRepo = repository.NewIngredientRepository(db)
	c.PizzaRepo = repository.NewPizzaRepository(db)
	c.PizzaSizeRepo = repository.NewPizzaSizeRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.DeliveryRepo = repository.NewDeliveryRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
}

func (c *Container) initServices() {
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.AllergenService = service.NewAllergenService(c.AllergenRepo)
	c.IngredientService = service.NewIngredientService(c.IngredientRepo, c.AllergenRepo)
	c.PizzaService = service.NewPizzaService(c.PizzaRepo, c.CategoryRepo, c.IngredientRepo, c.PizzaSizeRepo)
	c.PizzaSizeService = service.NewPizzaSizeService(c.PizzaSizeRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.PizzaRepo, c.PizzaSizeRepo, c.IngredientRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.DeliveryRepo, c.QueueClient, service.OrderServiceOptions{
		DeliveryFee:        c.Config.Order.DeliveryFee,
		TaxRate:            c.Config.Order.TaxRate,
		AutoCancelMinutes:  c.Config.Order.AutoCancelMinutes,
		NumberMaxGenerates: c.Config.Order.NumberMaxGenerates,
	})
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderRepo)
	c.DeliveryService = service.NewDeliveryService(c.DeliveryRepo, c.OrderRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CartService)
	c.AddressService = service.NewAddressService(c.AddressRepo)
}
