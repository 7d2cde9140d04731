package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/satyammall/stockledger/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(txHandler *handlers.TransactionHandler, reportHandler *handlers.ReportHandler, authHandler *handlers.AuthHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/login", authHandler.Login)
		api.GET("/inventory", txHandler.ListInventory)
		api.POST("/transactions", txHandler.SubmitBatch)
		api.GET("/transactions", txHandler.ListTransactions)
		api.GET("/reports/summary", reportHandler.Summary)
		api.GET("/reports/export/csv", reportHandler.ExportCSV)
		api.GET("/reports/export/pdf", reportHandler.ExportPDF)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
