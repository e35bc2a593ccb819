package routes

import (
	"brcargo_cotacoes/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes        = "/quotes"
	PathOperators     = "/operators"
	PathNotifications = "/notifications"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/statistics", quoteHandler.GetStatistics)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.GET("/:id/history", quoteHandler.GetHistory)

		quotes.POST("/:id/accept", quoteHandler.AcceptQuote)
		quotes.POST("/:id/send", quoteHandler.SendQuote)
		quotes.POST("/:id/approve", quoteHandler.ApproveQuote)
		quotes.POST("/:id/decline", quoteHandler.DeclineQuote)
		quotes.POST("/:id/decision", quoteHandler.RecordDecision)
		quotes.POST("/:id/finalize", quoteHandler.FinalizeQuote)
		quotes.POST("/:id/reassign", quoteHandler.ReassignQuote)
	}

	rg.GET(PathOperators, quoteHandler.ListOperators)
}

func addNotificationRoutes(rg *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	notifications := rg.Group(PathNotifications)
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
	}
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
