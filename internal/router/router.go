package router

import (
	"fmt"
	"strings"

	"github.com/pizzame/backend/internal/cache"
	"github.com/pizzame/backend/internal/config"
	adminhandlers "github.com/pizzame/backend/internal/http/handlers/admin"
	publichandlers "github.com/pizzame/backend/internal/http/handlers/public"
	"github.com/pizzame/backend/internal/logger"
	"github.com/pizzame/backend/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pme"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（披萨图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		catalog := apiV1.Group("/catalog")
		{
			catalog.GET("/categories", publicHandler.ListCategories)
			catalog.GET("/categories/:slug", publicHandler.GetCategory)
			catalog.GET("/pizzas", publicHandler.ListPizzas)
			catalog.GET("/pizzas/:slug", publicHandler.GetPizza)
			catalog.GET("/sizes", publicHandler.ListSizes)
			catalog.GET("/ingredients", publicHandler.ListIngredients)
			catalog.GET("/allergens", publicHandler.ListAllergens)
		}

		// 购物车接口（登录用户与游客共用）
		cart := apiV1.Group("/cart")
		cart.Use(OptionalUserJWTMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items/:id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:id", publicHandler.RemoveCartItem)
			cart.DELETE("", publicHandler.ClearCart)
		}

		// 下单与订单查询（游客可用）
		guest := apiV1.Group("")
		guest.Use(OptionalUserJWTMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			guest.POST("/orders/checkout", publicHandler.Checkout)
			guest.GET("/orders/track/:number", publicHandler.TrackOrder)
			guest.POST("/payments", publicHandler.CreatePayment)
			guest.GET("/orders/:id/payments", publicHandler.ListOrderPayments)
			guest.GET("/orders/:id/delivery", publicHandler.GetOrderDelivery)
			guest.POST("/orders/:id/delivery/rating", publicHandler.RateOrderDelivery)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.GET("/me/addresses", publicHandler.ListAddresses)
			user.POST("/me/addresses", publicHandler.CreateAddress)
			user.PUT("/me/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/me/addresses/:id", publicHandler.DeleteAddress)
			user.GET("/me/orders", publicHandler.ListMyOrders)
			user.GET("/me/orders/:id", publicHandler.GetMyOrder)
			user.POST("/me/orders/:id/cancel", publicHandler.CancelMyOrder)
		}

		// 管理员接口（员工令牌）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), StaffOnlyMiddleware())
		{
			// 分类管理
			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 过敏原管理
			admin.POST("/allergens", adminHandler.CreateAllergen)
			admin.PUT("/allergens/:id", adminHandler.UpdateAllergen)
			admin.DELETE("/allergens/:id", adminHandler.DeleteAllergen)

			// 配料与库存管理
			admin.GET("/ingredients", adminHandler.ListIngredients)
			admin.GET("/ingredients/low-stock", adminHandler.ListLowStockIngredients)
			admin.POST("/ingredients", adminHandler.CreateIngredient)
			admin.PUT("/ingredients/:id", adminHandler.UpdateIngredient)
			admin.DELETE("/ingredients/:id", adminHandler.DeleteIngredient)
			admin.POST("/ingredients/:id/stock", adminHandler.AdjustIngredientStock)

			// 尺寸管理
			admin.GET("/sizes", adminHandler.ListSizes)
			admin.POST("/sizes", adminHandler.CreateSize)
			admin.PUT("/sizes/:id", adminHandler.UpdateSize)
			admin.DELETE("/sizes/:id", adminHandler.DeleteSize)

			// 披萨管理
			admin.GET("/pizzas", adminHandler.ListPizzas)
			admin.POST("/pizzas", adminHandler.CreatePizza)
			admin.PUT("/pizzas/:id", adminHandler.UpdatePizza)
			admin.DELETE("/pizzas/:id", adminHandler.DeletePizza)

			// 订单管理
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.PATCH("/orders/:id/items/:item_id/preparation", adminHandler.UpdateOrderItemPreparation)

			// 配送管理
			admin.POST("/orders/:id/delivery/assign", adminHandler.AssignDriver)
			admin.PATCH("/orders/:id/delivery/status", adminHandler.UpdateDeliveryStatus)
			admin.PUT("/orders/:id/delivery/location", adminHandler.UpdateDeliveryLocation)

			// 支付管理
			admin.GET("/orders/:id/payments", adminHandler.ListOrderPayments)
			admin.PATCH("/payments/:id/status", adminHandler.UpdatePaymentStatus)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
