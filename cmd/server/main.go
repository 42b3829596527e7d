package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerforge/portfolio-api/adapters/event"
	httpAdapter "github.com/careerforge/portfolio-api/adapters/http"
	"github.com/careerforge/portfolio-api/adapters/llm"
	"github.com/careerforge/portfolio-api/adapters/persistence"
	analyticsUC "github.com/careerforge/portfolio-api/internal/application/usecase/analytics"
	authUC "github.com/careerforge/portfolio-api/internal/application/usecase/auth"
	editorUC "github.com/careerforge/portfolio-api/internal/application/usecase/editor"
	generationUC "github.com/careerforge/portfolio-api/internal/application/usecase/generation"
	portfolioUC "github.com/careerforge/portfolio-api/internal/application/usecase/portfolio"
	themeUC "github.com/careerforge/portfolio-api/internal/application/usecase/theme"
	"github.com/careerforge/portfolio-api/internal/config"
	"github.com/careerforge/portfolio-api/pkg/auth"
	"github.com/careerforge/portfolio-api/pkg/logger"
	"github.com/careerforge/portfolio-api/pkg/tracing"
)

func main() {
	fmt.Println("Starting Portfolio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Tracing
	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
		if err != nil {
			appLogger.Fatal("cannot initialize tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	generationRepo := persistence.NewPostgresGenerationRepo(dbPool, appLogger)
	analyticsRepo := persistence.NewPostgresAnalyticsRepo(dbPool, appLogger)
	promptRepo := persistence.NewCachedPromptRepo(
		persistence.NewPostgresPromptRepo(dbPool, appLogger), redisClient, appLogger)
	themeRepo := persistence.NewCachedThemeRepo(
		persistence.NewPostgresThemeRepo(dbPool, appLogger), redisClient, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	llmService, err := llm.NewGroqLLMAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot initialize LLM adapter", err)
	}
	analyticsPublisher := event.NewKafkaAnalyticsPublisher(kafkaClient)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	createPortfolioUseCase := portfolioUC.NewCreatePortfolioUseCase(portfolioRepo)
	updatePortfolioUseCase := portfolioUC.NewUpdatePortfolioUseCase(portfolioRepo)
	deletePortfolioUseCase := portfolioUC.NewDeletePortfolioUseCase(portfolioRepo)
	publishPortfolioUseCase := portfolioUC.NewPublishPortfolioUseCase(updatePortfolioUseCase)
	listPortfoliosUseCase := portfolioUC.NewListPortfoliosUseCase(portfolioRepo)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(portfolioRepo)
	getPublicPortfolioUseCase := portfolioUC.NewGetPublicPortfolioUseCase(portfolioRepo)
	generateContentUseCase := generationUC.NewGenerateContentUseCase(generationRepo, promptRepo, llmService, appLogger)
	enhanceTextUseCase := generationUC.NewEnhanceTextUseCase(generationRepo, llmService, appLogger)
	trackEventUseCase := analyticsUC.NewTrackEventUseCase(analyticsPublisher, appLogger)
	getAnalyticsUseCase := analyticsUC.NewGetAnalyticsUseCase(analyticsRepo, portfolioRepo)
	listThemesUseCase := themeUC.NewListThemesUseCase(themeRepo)
	editorManager := editorUC.NewManager(portfolioRepo, generateContentUseCase, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	portfolioHandler := httpAdapter.NewPortfolioHandler(
		createPortfolioUseCase,
		updatePortfolioUseCase,
		deletePortfolioUseCase,
		publishPortfolioUseCase,
		listPortfoliosUseCase,
		getPortfolioUseCase,
		getPublicPortfolioUseCase,
		appLogger,
	)
	generationHandler := httpAdapter.NewGenerationHandler(generateContentUseCase, enhanceTextUseCase, appLogger)
	analyticsHandler := httpAdapter.NewAnalyticsHandler(trackEventUseCase, getAnalyticsUseCase, appLogger)
	themeHandler := httpAdapter.NewThemeHandler(listThemesUseCase)
	editorHandler := httpAdapter.NewEditorHandler(editorManager, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.ErrorHandler(appLogger))

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			portfolios := private.Group("/portfolios")
			{
				portfolios.POST("", portfolioHandler.CreatePortfolio)
				portfolios.GET("", portfolioHandler.ListPortfolios)
				portfolios.GET("/:id", portfolioHandler.GetPortfolio)
				portfolios.PUT("/:id", portfolioHandler.UpdatePortfolio)
				portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
				portfolios.POST("/:id/publish", portfolioHandler.PublishPortfolio)
				portfolios.GET("/:id/analytics", analyticsHandler.GetAnalytics)
			}

			private.POST("/generate", generationHandler.GenerateContent)
			private.POST("/enhance", generationHandler.EnhanceContent)
			private.GET("/themes", themeHandler.ListThemes)

			editor := private.Group("/editor/sessions")
			{
				editor.POST("", editorHandler.OpenSession)
				editor.GET("/:id", editorHandler.GetSession)
				editor.PATCH("/:id", editorHandler.UpdateDocument)
				editor.POST("/:id/generate", editorHandler.Generate)
				editor.POST("/:id/save", editorHandler.Save)
				editor.POST("/:id/publish", editorHandler.Publish)
				editor.DELETE("/:id", editorHandler.CloseSession)
			}
		}

		public := api.Group("/public")
		{
			public.GET("/portfolios/:id", portfolioHandler.GetPublicPortfolio)
			public.POST("/analytics", analyticsHandler.TrackEvent)
		}

		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
