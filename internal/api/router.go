package api

import (
	"github.com/gin-gonic/gin"

	"parkwise/internal/api/handler"
	"parkwise/internal/service"
)

func SetupRouter(
	as *service.AuthService,
	ss *service.SessionService,
	ps *service.PaymentService,
	cs *service.CatalogService,
	rs *service.ReportService,
) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	authHandler := handler.NewAuthHandler(as)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	reportHandler := handler.NewReportHandler(rs)
	adminRoutes := r.Group("/admin")
	{
		adminRoutes.GET("/drivers", reportHandler.Drivers)
		adminRoutes.GET("/stats", reportHandler.Stats)
	}
	reportRoutes := r.Group("/reports")
	{
		reportRoutes.GET("/lot_summary", reportHandler.LotSummary)
		reportRoutes.GET("/unpaid_above_average", reportHandler.UnpaidAboveAverage)
		reportRoutes.GET("/plates_union", reportHandler.PlatesUnion)
	}

	vehicleHandler := handler.NewVehicleHandler(cs)
	r.GET("/vehicle/:driverId", vehicleHandler.List)
	r.POST("/vehicle/add", vehicleHandler.Add)
	// Frontend cũ gọi cả số ít lẫn số nhiều, giữ cả hai.
	r.DELETE("/vehicle/:plate", vehicleHandler.Delete)
	r.DELETE("/vehicles/:plate", vehicleHandler.Delete)

	cardHandler := handler.NewCardHandler(cs)
	cardRoutes := r.Group("/cards")
	{
		cardRoutes.GET("/:driverId", cardHandler.List)
		cardRoutes.POST("/add", cardHandler.Add)
		cardRoutes.POST("/set-default", cardHandler.SetDefault)
		cardRoutes.DELETE("/:cardId", cardHandler.Delete)
	}

	lotHandler := handler.NewLotHandler(cs)
	r.GET("/lots/nearby", lotHandler.Nearby)

	sessionHandler := handler.NewSessionHandler(ss)
	sessionRoutes := r.Group("/session")
	{
		sessionRoutes.POST("/start", sessionHandler.Start)
		sessionRoutes.POST("/end", sessionHandler.End)
		sessionRoutes.GET("/active_spots", sessionHandler.ActiveSpots)
		sessionRoutes.GET("/has_unpaid", sessionHandler.HasUnpaid)
		sessionRoutes.GET("/active", sessionHandler.Active)
	}
	r.GET("/logs/driver/:driverId", sessionHandler.HistoryByDriver)

	paymentHandler := handler.NewPaymentHandler(ps)
	r.GET("/payments/due/:driverId", paymentHandler.Due)
	r.POST("/payment/pay", paymentHandler.Pay)
	r.POST("/payment/pay_all", paymentHandler.PayAll)

	return r
}
