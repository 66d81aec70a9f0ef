package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/go-redis/redis/v8"

	"junkops-api/internal/client"
	"junkops-api/internal/handler"
	"junkops-api/internal/metrics"
	"junkops-api/internal/middleware"
	"junkops-api/internal/repository"
	"junkops-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	JWTSecret      string
	AllowedOrigins []string
	SmsClient      client.SmsClient
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "junkops-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "junkops-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "junkops-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "junkops-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "junkops-api"})
	})

	// Initialize repositories
	leadRepo := repository.NewLeadRepository(cfg.DB)
	customerRepo := repository.NewCustomerRepository(cfg.DB)
	employeeRepo := repository.NewEmployeeRepository(cfg.DB)
	jobRepo := repository.NewJobRepository(cfg.DB)
	estimateRepo := repository.NewEstimateRepository(cfg.DB)
	tagRepo := repository.NewTagRepository(cfg.DB)
	smsLogRepo := repository.NewSmsLogRepository(cfg.DB)

	// Initialize services
	leadService := service.NewLeadService(leadRepo, tagRepo, cfg.Redis, cfg.Metrics, cfg.Logger)
	customerService := service.NewCustomerService(customerRepo, cfg.Logger)
	employeeService := service.NewEmployeeService(employeeRepo, cfg.Logger)
	jobService := service.NewJobService(jobRepo, customerRepo, employeeRepo, cfg.Metrics, cfg.Logger)
	estimateService := service.NewEstimateService(estimateRepo, customerRepo, leadRepo, cfg.Logger)
	tagService := service.NewTagService(tagRepo, cfg.Logger)
	smsService := service.NewSmsService(smsLogRepo, leadRepo, cfg.SmsClient, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	leadHandler := handler.NewLeadHandler(leadService)
	customerHandler := handler.NewCustomerHandler(customerService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	jobHandler := handler.NewJobHandler(jobService)
	estimateHandler := handler.NewEstimateHandler(estimateService)
	tagHandler := handler.NewTagHandler(tagService)
	smsHandler := handler.NewSmsHandler(smsService)

	api := r.Group("/api/v1")
	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole("admin")

	// ============================================================
	// Vendor webhook (no auth, tenant identified from the path)
	// ============================================================
	api.POST("/webhooks/sms/:businessId", smsHandler.HandleWebhook)

	// ============================================================
	// Lead routes
	// ============================================================
	leads := api.Group("/leads")
	leads.Use(authMiddleware)
	{
		leads.POST("", leadHandler.CreateLead)
		leads.GET("", leadHandler.ListLeads)
		leads.GET("/search", leadHandler.SearchLeads)
		leads.GET("/summary", leadHandler.GetLeadSummary)
		leads.GET("/:id", leadHandler.GetLead)
		leads.PUT("/:id", leadHandler.UpdateLead)
		leads.DELETE("/:id", leadHandler.DeleteLead)
		leads.POST("/:id/convert", leadHandler.ConvertLead)

		// Contacts
		leads.POST("/:id/contacts", leadHandler.AddContact)
		leads.GET("/:id/contacts", leadHandler.ListContacts)
		leads.PUT("/:id/contacts/:contactId/primary", leadHandler.SetPrimaryContact)
		leads.DELETE("/:id/contacts/:contactId", leadHandler.DeleteContact)

		// Activities and notes
		leads.POST("/:id/activities", leadHandler.AddActivity)
		leads.GET("/:id/activities", leadHandler.ListActivities)
		leads.POST("/:id/notes", leadHandler.AddNote)
		leads.GET("/:id/notes", leadHandler.ListNotes)

		// Qualification
		leads.PUT("/:id/qualification", leadHandler.UpsertQualification)
		leads.GET("/:id/qualification", leadHandler.GetQualification)

		// Follow-ups
		leads.POST("/:id/follow-ups", leadHandler.AddFollowUp)
		leads.GET("/:id/follow-ups", leadHandler.ListFollowUps)
		leads.PUT("/:id/follow-ups/:followUpId/complete", leadHandler.CompleteFollowUp)

		// Tags
		leads.POST("/:id/tags/:tagId", leadHandler.AssignTag)
		leads.DELETE("/:id/tags/:tagId", leadHandler.RemoveTag)
		leads.GET("/:id/tags", leadHandler.ListLeadTags)

		// SMS audit trail for a lead
		leads.GET("/:id/sms", smsHandler.ListLeadLogs)
	}

	// ============================================================
	// Customer routes
	// ============================================================
	customers := api.Group("/customers")
	customers.Use(authMiddleware)
	{
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("", customerHandler.ListCustomers)
		customers.GET("/search", customerHandler.SearchCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
		customers.DELETE("/:id", customerHandler.DeleteCustomer)
	}

	// ============================================================
	// Employee routes
	// ============================================================
	employees := api.Group("/employees")
	employees.Use(authMiddleware)
	{
		employees.POST("", employeeHandler.CreateEmployee)
		employees.GET("", employeeHandler.ListEmployees)
		employees.GET("/:id", employeeHandler.GetEmployee)
		employees.PUT("/:id", employeeHandler.UpdateEmployee)
		employees.DELETE("/:id", adminOnly, employeeHandler.DeleteEmployee)
	}

	// ============================================================
	// Job routes
	// ============================================================
	jobs := api.Group("/jobs")
	jobs.Use(authMiddleware)
	{
		jobs.POST("", jobHandler.CreateJob)
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.PUT("/:id", jobHandler.UpdateJob)
		jobs.PUT("/:id/complete", jobHandler.CompleteJob)
		jobs.PUT("/:id/cancel", jobHandler.CancelJob)
	}

	// ============================================================
	// Estimate routes
	// ============================================================
	estimates := api.Group("/estimates")
	estimates.Use(authMiddleware)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PUT("/:id/send", estimateHandler.SendEstimate)
		estimates.PUT("/:id/accept", estimateHandler.AcceptEstimate)
		estimates.PUT("/:id/decline", estimateHandler.DeclineEstimate)
		estimates.PUT("/:id/items", estimateHandler.ReplaceItems)
	}

	// ============================================================
	// Tag routes
	// ============================================================
	tags := api.Group("/tags")
	tags.Use(authMiddleware)
	{
		tags.POST("", tagHandler.CreateTag)
		tags.GET("", tagHandler.ListTags)
		tags.PUT("/:id", tagHandler.UpdateTag)
		tags.DELETE("/:id", adminOnly, tagHandler.DeleteTag)
	}

	// ============================================================
	// SMS routes
	// ============================================================
	sms := api.Group("/sms")
	sms.Use(authMiddleware)
	{
		sms.POST("/send", smsHandler.SendSms)
		sms.GET("/logs", smsHandler.ListLogs)
	}

	return r
}
