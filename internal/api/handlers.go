package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"comanda/internal/analytics"
	"comanda/internal/catalog"
	"comanda/internal/kitchen"
	"comanda/internal/models"
	"comanda/internal/monitoring"
	"comanda/internal/tables"
	"comanda/internal/variants"
	"comanda/internal/voice"
)

// SelectionPayload carries one scope's group selections from a client.
type SelectionPayload map[string][]string

// LineRequest describes a dish being configured: the item, quantity, and
// the selections per scope. Simple items fill Selections; mixed items fill
// Prep1/Prep2.
type LineRequest struct {
	MenuItemID  string           `json:"menuItemId" binding:"required"`
	Qty         int              `json:"qty"`
	Selections  SelectionPayload `json:"selections"`
	Prep1       SelectionPayload `json:"prep1"`
	Prep2       SelectionPayload `json:"prep2"`
	ManualPrice *float64         `json:"manualPrice"`
}

// buildSession replays the request's selections through the engine's
// mutation ops, in group order, so disable rules apply the same way they
// do interactively.
func buildSession(item *models.MenuItem, req *LineRequest) *variants.Session {
	session := variants.NewSession(item)
	apply := func(scope variants.Scope, payload SelectionPayload) {
		for _, g := range item.VariantGroups {
			chosen, ok := payload[g.Type]
			if !ok || len(chosen) == 0 {
				continue
			}
			if g.AllowMultiple {
				session.Replace(scope, g.Type, chosen)
			} else {
				session.Toggle(scope, g.Type, chosen[0])
			}
		}
	}
	if item.IsMixed {
		apply(variants.ScopePrep1, req.Prep1)
		apply(variants.ScopePrep2, req.Prep2)
	} else {
		apply(variants.ScopeSimple, req.Selections)
	}
	return session
}

func (s *Server) catalogFor(c *gin.Context, scope string) (*catalog.Catalog, *models.Restaurant, bool) {
	state, err := s.Tables.State(c.Request.Context(), scope)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	cat, err := catalog.New(state.Menu)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return cat, state, true
}

func tableID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("tableId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
		return 0, false
	}
	return id, true
}

// Auth

func (s *Server) Unlock(c *gin.Context) {
	scope := c.Param("scope")
	var req struct {
		PIN string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := s.Tables.State(c.Request.Context(), scope)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if !state.Features.PinSecurity || state.PIN == "" {
		c.JSON(http.StatusOK, gin.H{"token": "", "pinRequired": false})
		return
	}

	token, err := s.Gate.Unlock(scope, state.PIN, req.PIN)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong PIN"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "pinRequired": true})
}

// State & menu

func (s *Server) GetState(c *gin.Context) {
	state, err := s.Tables.State(c.Request.Context(), c.Param("scope"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	// Never ship the PIN to clients.
	state.PIN = ""
	c.JSON(http.StatusOK, state)
}

func (s *Server) GetMenu(c *gin.Context) {
	state, err := s.Tables.State(c.Request.Context(), c.Param("scope"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state.Menu)
}

func (s *Server) UpsertMenuItem(c *gin.Context) {
	var req struct {
		Category models.Category `json:"category" binding:"required"`
		Item     models.MenuItem `json:"item" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.Tables.UpsertMenuItem(c.Request.Context(), c.Param("scope"), req.Category, req.Item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item saved"})
}

func (s *Server) DeleteMenuItem(c *gin.Context) {
	if _, err := s.Tables.DeleteMenuItem(c.Request.Context(), c.Param("scope"), c.Param("id")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, variants.ErrUnknownCatalogReference) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// Variant engine

// EvaluateSelection is the interactive re-evaluation endpoint: for the
// current selections it returns visible groups, disabled options, validity
// and the live price, per scope.
func (s *Server) EvaluateSelection(c *gin.Context) {
	var req LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, _, ok := s.catalogFor(c, c.Param("scope"))
	if !ok {
		return
	}
	item, ok := cat.ByID(req.MenuItemID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	session := buildSession(item, &req)
	scopes := []variants.Scope{variants.ScopeSimple}
	if item.IsMixed {
		scopes = []variants.Scope{variants.ScopePrep1, variants.ScopePrep2}
	}
	views := make(map[string]gin.H, len(scopes))
	for _, scope := range scopes {
		views[string(scope)] = gin.H{
			"visibleGroups":   setToList(session.VisibleGroups(scope)),
			"disabledOptions": setToList(session.DisabledOptions(scope)),
			"selections":      session.Selection(scope),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":  session.IsValid(),
		"price":  session.Price(),
		"scopes": views,
	})
}

func setToList(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// Order taking

func (s *Server) AddLine(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	var req LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scope := c.Param("scope")
	cat, _, ok := s.catalogFor(c, scope)
	if !ok {
		return
	}
	item, ok := cat.ByID(req.MenuItemID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	session := buildSession(item, &req)
	line, err := variants.BuildLine(session, cat.CategoryOf(item.ID), req.Qty)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if req.ManualPrice != nil && item.IsVariablePrice() {
		line.UnitPrice = *req.ManualPrice
	}

	if _, err := s.Tables.AddLine(c.Request.Context(), scope, id, line); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	monitoring.LinesAdded.WithLabelValues("manual").Inc()
	c.JSON(http.StatusCreated, line)
}

func (s *Server) RemoveLine(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	if _, err := s.Tables.RemoveLine(c.Request.Context(), c.Param("scope"), id, c.Param("lineId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Line removed"})
}

func (s *Server) SetManualPrice(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	var req struct {
		Price float64 `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.Tables.SetManualPrice(c.Request.Context(), c.Param("scope"), id, c.Param("lineId"), req.Price); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Price updated"})
}

func (s *Server) UpdateLineStatus(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	var req struct {
		Status models.OrderItemStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.Tables.UpdateLineStatus(c.Request.Context(), c.Param("scope"), id, c.Param("lineId"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (s *Server) SendToKitchen(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	if _, err := s.Tables.SendToKitchen(c.Request.Context(), c.Param("scope"), id); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, variants.ErrZeroPriceItem) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	monitoring.DishesSentToKitchen.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Order sent to kitchen"})
}

func (s *Server) RequestBill(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	if _, err := s.Tables.RequestBill(c.Request.Context(), c.Param("scope"), id); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, variants.ErrZeroPriceItem) || errors.Is(err, tables.ErrUnsentDishes) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill requested"})
}

func (s *Server) CloseTable(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	if _, err := s.Tables.CloseTable(c.Request.Context(), c.Param("scope"), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	monitoring.TablesClosed.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Table closed"})
}

// Voice orders

type voiceRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

func (s *Server) parseAndReconcile(c *gin.Context, scope string) ([]models.OrderLine, []string, bool) {
	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	cat, state, ok := s.catalogFor(c, scope)
	if !ok {
		return nil, nil, false
	}

	start := time.Now()
	parsed, err := s.Parser.Parse(c.Request.Context(), req.Transcript, state.Menu)
	monitoring.LLMCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		monitoring.VoiceParses.WithLabelValues("error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	lines, unmatched := voice.Reconcile(parsed, cat)
	monitoring.VoiceUnmatchedItems.Add(float64(len(unmatched)))
	s.Monitor.RecordMetric("last_voice_parse_items", len(parsed.Items))
	s.Monitor.RecordMetric("last_voice_unmatched", len(unmatched))
	if len(lines) == 0 {
		monitoring.VoiceParses.WithLabelValues("empty").Inc()
	} else {
		monitoring.VoiceParses.WithLabelValues("ok").Inc()
	}
	return lines, unmatched, true
}

// PreviewVoiceOrder parses and reconciles without committing anything, so
// the waiter can confirm before the lines hit the table.
func (s *Server) PreviewVoiceOrder(c *gin.Context) {
	lines, unmatched, ok := s.parseAndReconcile(c, c.Param("scope"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines, "unmatched": unmatched})
}

// AddVoiceOrder parses, reconciles, and appends every matched line to the
// table. Unmatched names are reported, never guessed.
func (s *Server) AddVoiceOrder(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	scope := c.Param("scope")
	lines, unmatched, ok := s.parseAndReconcile(c, scope)
	if !ok {
		return
	}
	for _, line := range lines {
		if _, err := s.Tables.AddLine(c.Request.Context(), scope, id, line); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "unmatched": unmatched})
			return
		}
		monitoring.LinesAdded.WithLabelValues("voice").Inc()
	}
	c.JSON(http.StatusCreated, gin.H{"added": lines, "unmatched": unmatched})
}

// AI text

func (s *Server) GenerateDescription(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Ingredients string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start := time.Now()
	text, err := s.Generator.DishDescription(c.Request.Context(), req.Name, req.Ingredients)
	monitoring.LLMCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": text})
}

func (s *Server) GenerateDailySpecial(c *gin.Context) {
	state, err := s.Tables.State(c.Request.Context(), c.Param("scope"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	var overstocked []string
	for _, item := range state.Inventory {
		if item.LowStockThreshold > 0 && item.Stock > item.LowStockThreshold*3 {
			overstocked = append(overstocked, item.Name)
		}
	}
	if len(overstocked) == 0 {
		c.JSON(http.StatusOK, gin.H{"special": nil, "message": "No overstocked ingredients"})
		return
	}

	start := time.Now()
	special, err := s.Generator.DailySpecialFromStock(c.Request.Context(), overstocked)
	monitoring.LLMCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"special": special})
}

// Kitchen, inventory, analytics

func (s *Server) GetKitchenQueue(c *gin.Context) {
	state, err := s.Tables.State(c.Request.Context(), c.Param("scope"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": kitchen.BuildQueue(state, time.Now())})
}

func (s *Server) GetLowStock(c *gin.Context) {
	low, err := s.Tables.LowStock(c.Request.Context(), c.Param("scope"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": low})
}

func (s *Server) UpdateInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.Tables.UpdateInventoryItem(c.Request.Context(), c.Param("scope"), item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory updated"})
}

func (s *Server) GetSalesSummary(c *gin.Context) {
	state, err := s.Tables.State(c.Request.Context(), c.Param("scope"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	topN := 5
	if n, err := strconv.Atoi(c.DefaultQuery("top", "5")); err == nil && n > 0 {
		topN = n
	}
	c.JSON(http.StatusOK, analytics.Summarize(state.CompletedOrders, topN))
}

func (s *Server) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.Monitor.GetMetrics())
}
