// Package server exposes the orchestrator over HTTP.
package server

import (
	"context"
	"net"
	"net/http"

	"go-jobdemand-scraper/internal/logging"
	"go-jobdemand-scraper/internal/scraper"

	"github.com/gin-gonic/gin"
)

// Scraper is the part of *scraper.Orchestrator the handlers need.
type Scraper interface {
	ScrapeAll(ctx context.Context, skills []string) ([]scraper.Outcome, error)
	Portals() []scraper.Portal
}

type Server struct {
	scraper Scraper
	log     *logging.Logger
}

func New(s Scraper, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{scraper: s, log: log}
}

// Router builds the gin engine. Call gin.SetMode before it for release builds.
func (s *Server) Router() *gin.Engine {
	initValidator()

	r := gin.New()
	r.Use(requestID(s.log), accessLog(), recovery())

	r.GET("/", s.health)

	api := r.Group("/api")
	api.GET("/portals", s.listPortals)
	api.POST("/scrape/all", s.scrapeAll)

	return r
}

// NewHTTPServer wraps the router in an *http.Server listening on addr.
// Request contexts are canceled as soon as Shutdown starts, so in-flight
// scrapes stop waiting on their pages and answer within the drain window.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
