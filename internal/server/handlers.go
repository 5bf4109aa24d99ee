package server

import (
	"errors"
	"net/http"

	"go-jobdemand-scraper/internal/logging"
	"go-jobdemand-scraper/internal/scraper"

	"github.com/gin-gonic/gin"
)

const msgSkillsRequired = "Skills array is required"

type scrapeRequest struct {
	Skills []string `json:"skills" binding:"required"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type portalView struct {
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	SearchURL         string        `json:"search_url"`
	SettleDelay       string        `json:"settle_delay"`
	NavigationTimeout string        `json:"navigation_timeout"`
	WaitUntil         string        `json:"wait_until"`
	Estimate          scraper.Range `json:"estimate"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Job demand scraper API is running!",
		"status":  "healthy",
	})
}

func (s *Server) listPortals(c *gin.Context) {
	portals := s.scraper.Portals()
	views := make([]portalView, 0, len(portals))
	for _, p := range portals {
		views = append(views, portalView{
			Name:              p.Name,
			Description:       p.Description,
			SearchURL:         p.SearchURL,
			SettleDelay:       p.SettleDelay.String(),
			NavigationTimeout: p.NavigationTimeout.String(),
			WaitUntil:         string(p.WaitUntil),
			Estimate:          p.Estimate,
		})
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) scrapeAll(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx, s.log)

	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, log, scraper.InvalidInput("%w", err))
		return
	}

	outcomes, err := s.scraper.ScrapeAll(ctx, req.Skills)
	if err != nil {
		fail(c, log, err)
		return
	}
	c.JSON(http.StatusOK, outcomes)
}

func fail(c *gin.Context, log *logging.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusBadRequest {
		log.Warn("rejecting scrape request", "err", err)
		c.JSON(status, errorResponse{Error: msgSkillsRequired, Details: validationDetails(errors.Unwrap(err))})
		return
	}
	log.Error("scrape failed", "err", err)
	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch scraper.KindOf(err) {
	case scraper.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
