package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/Coderanger08/FinGenie/handlers"
	"github.com/Coderanger08/FinGenie/middleware"
	"github.com/Coderanger08/FinGenie/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
}

// SetupProtectedAuthRoutes sets up auth routes that require a valid token.
func SetupProtectedAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupUserRoutes sets up protected user settings routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
	rg.GET("/currencies", userHandler.ListCurrencies)
}

// SetupTransactionRoutes sets up protected transaction routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB, flows *services.FlowInvoker, ws *handlers.WSHandler) {
	transactionService := services.NewTransactionService(db)
	categorizerService := services.NewCategorizerService(db, flows)

	h := &handlers.TransactionHandler{
		Transactions: transactionService,
		Categorizer:  categorizerService,
		WS:           ws,
	}

	rg.GET("/transactions", h.List)
	rg.POST("/transactions", h.Create)
	rg.GET("/transactions/:id", h.Get)
	rg.PUT("/transactions/:id", h.Update)
	rg.DELETE("/transactions/:id", h.Delete)
	rg.POST("/transactions/suggest-category", h.SuggestCategory)
}

// SetupBudgetRoutes sets up protected budget routes.
func SetupBudgetRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db, transactionService)

	h := &handlers.BudgetHandler{Budgets: budgetService, WS: ws}

	rg.GET("/budgets", h.List)
	rg.POST("/budgets", h.Create)
	rg.PUT("/budgets/:id", h.Update)
	rg.DELETE("/budgets/:id", h.Delete)
}

// SetupAIRoutes sets up the protected model-backed flow routes.
func SetupAIRoutes(rg *gin.RouterGroup, db *sql.DB, flows *services.FlowInvoker) *handlers.AIHandler {
	transactionService := services.NewTransactionService(db)

	h := &handlers.AIHandler{
		DB:      db,
		Flows:   flows,
		Context: services.NewContextBuilder(transactionService),
	}

	ai := rg.Group("/ai")
	ai.Use(middleware.AIRateLimiter())
	ai.POST("/suggest-categories", h.SuggestCategories)
	ai.POST("/adjust-budget", h.AdjustBudget)
	ai.POST("/optimize-budget", h.OptimizeBudget)
	ai.POST("/chat", h.Chat)

	return h
}

// SetupChatRoutes sets up the protected persisted-conversation routes.
func SetupChatRoutes(rg *gin.RouterGroup, db *sql.DB, ai *handlers.AIHandler, ws *handlers.WSHandler) {
	h := &handlers.ChatHandler{
		AI:   ai,
		Chat: services.NewChatService(db),
		WS:   ws,
	}

	rg.POST("/chat/messages", middleware.AIRateLimiter(), h.SendMessage)
	rg.GET("/chat/messages", h.GetHistory)
	rg.DELETE("/chat/messages", h.ClearHistory)
}
