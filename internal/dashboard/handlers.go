package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the dashboard JSON API on a gin router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/summary", s.HandleSummary)
	api.GET("/months", s.HandleMonths)
	api.GET("/products", s.HandleProducts)
	api.GET("/holdings", s.HandleHoldings)
	api.GET("/transactions", s.HandleTransactions)
	api.GET("/status", s.HandleStatus)
	api.POST("/refresh", s.HandleRefresh)
}

// needsRefresh is the response sent before the first rebuild completes.
func needsRefresh(c *gin.Context) {
	c.JSON(http.StatusAccepted, gin.H{"message": "no data computed yet; refresh required", "needsRefresh": true})
}

// HandleSummary returns the derived metrics triple and ROI progress.
func (s *Service) HandleSummary(c *gin.Context) {
	snap, ok := s.Snapshot()
	if !ok {
		needsRefresh(c)
		return
	}
	c.JSON(http.StatusOK, snap.Summary)
}

// HandleMonths returns the per-month income/expense/investment buckets.
func (s *Service) HandleMonths(c *gin.Context) {
	snap, ok := s.Snapshot()
	if !ok {
		needsRefresh(c)
		return
	}
	c.JSON(http.StatusOK, snap.Months)
}

// HandleProducts returns the revenue-per-product breakdown.
func (s *Service) HandleProducts(c *gin.Context) {
	snap, ok := s.Snapshot()
	if !ok {
		needsRefresh(c)
		return
	}
	c.JSON(http.StatusOK, snap.Products)
}

// HandleHoldings returns the asset positions with annotated buy lots.
func (s *Service) HandleHoldings(c *gin.Context) {
	snap, ok := s.Snapshot()
	if !ok {
		needsRefresh(c)
		return
	}
	c.JSON(http.StatusOK, snap.Holdings)
}

// HandleTransactions returns one page of the ledger. The page query
// parameter is 1-based; anything unparseable reads as page 1 and pages
// past the end clamp to the last page.
func (s *Service) HandleTransactions(c *gin.Context) {
	if _, ok := s.Snapshot(); !ok {
		needsRefresh(c)
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	views, info := s.TransactionsPage(page)
	c.JSON(http.StatusOK, gin.H{
		"transactions": views,
		"page":         info.Page,
		"totalPages":   info.TotalPages,
		"from":         info.From,
		"to":           info.To,
		"total":        info.Total,
	})
}

// HandleStatus returns rebuild metadata.
func (s *Service) HandleStatus(c *gin.Context) {
	snap, ok := s.Snapshot()
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"hasData":      false,
			"stale":        s.Stale(),
			"needsRefresh": true,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hasData":     true,
		"stale":       s.Stale(),
		"lastRebuild": snap.LastRebuild,
	})
}

// HandleRefresh triggers a synchronous rebuild.
func (s *Service) HandleRefresh(c *gin.Context) {
	s.Rebuild()
	snap, _ := s.Snapshot()
	c.JSON(http.StatusOK, gin.H{"message": "rebuilt", "lastRebuild": snap.LastRebuild})
}
