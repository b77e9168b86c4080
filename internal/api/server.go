package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"comanda/internal/auth"
	"comanda/internal/kitchen"
	"comanda/internal/monitoring"
	"comanda/internal/tables"
	"comanda/internal/voice"
)

// Server represents the main API handler for the point of sale
type Server struct {
	Router    *gin.Engine
	Tables    *tables.Service
	Parser    *voice.Parser
	Generator *voice.Generator
	Hub       *kitchen.Hub
	Gate      *auth.PinGate
	Monitor   *monitoring.Monitor
}

// NewServer creates a new API server instance
func NewServer(svc *tables.Service, parser *voice.Parser, generator *voice.Generator, hub *kitchen.Hub, gate *auth.PinGate) *Server {
	s := &Server{
		Router:    gin.Default(),
		Tables:    svc,
		Parser:    parser,
		Generator: generator,
		Hub:       hub,
		Gate:      gate,
		Monitor:   monitoring.NewMonitor(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Comanda API is running"})
	})

	// Kitchen displays subscribe before unlocking; the feed carries no
	// prices.
	s.Router.GET("/ws/:scope/kitchen", s.Hub.HandleWS)

	s.Router.POST("/api/v1/:scope/auth/unlock", s.Unlock)

	v1 := s.Router.Group("/api/v1/:scope")
	v1.Use(s.Gate.Middleware(s.pinRequired))
	{
		v1.GET("/state", s.GetState)

		// Menu catalog
		v1.GET("/menu", s.GetMenu)
		v1.POST("/menu/items", s.UpsertMenuItem)
		v1.DELETE("/menu/items/:id", s.DeleteMenuItem)

		// Variant engine evaluation (interactive re-eval on every toggle)
		v1.POST("/selection/evaluate", s.EvaluateSelection)

		// Order taking
		v1.POST("/tables/:tableId/lines", s.AddLine)
		v1.DELETE("/tables/:tableId/lines/:lineId", s.RemoveLine)
		v1.PUT("/tables/:tableId/lines/:lineId/price", s.SetManualPrice)
		v1.PUT("/tables/:tableId/lines/:lineId/status", s.UpdateLineStatus)
		v1.POST("/tables/:tableId/send", s.SendToKitchen)
		v1.POST("/tables/:tableId/bill", s.RequestBill)
		v1.POST("/tables/:tableId/close", s.CloseTable)

		// Voice orders
		v1.POST("/voice/preview", s.PreviewVoiceOrder)
		v1.POST("/tables/:tableId/voice", s.AddVoiceOrder)

		// AI text
		v1.POST("/ai/description", s.GenerateDescription)
		v1.POST("/ai/daily-special", s.GenerateDailySpecial)

		// Kitchen & inventory & analytics
		v1.GET("/kitchen/queue", s.GetKitchenQueue)
		v1.GET("/inventory/low", s.GetLowStock)
		v1.PUT("/inventory/items", s.UpdateInventoryItem)
		v1.GET("/analytics/sales", s.GetSalesSummary)

		v1.GET("/status", s.GetStatus)
	}
}

// pinRequired reports whether the scope has the PIN lock enabled.
func (s *Server) pinRequired(scope string) bool {
	state, err := s.Tables.State(context.Background(), scope)
	if err != nil {
		return false
	}
	return state.Features.PinSecurity && state.PIN != ""
}
