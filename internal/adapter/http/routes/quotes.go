package routes

import (
	"oficina_quotes/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing   = "/ping"
	PathQuotes = "/quotes"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("/:id/approve", quoteHandler.ApproveQuote)
		quotes.POST("/:id/reject", quoteHandler.RejectQuote)
	}
}
