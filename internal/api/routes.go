package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rawblock/esopforge/internal/benchwatch"
	"github.com/rawblock/esopforge/internal/db"
	"github.com/rawblock/esopforge/internal/jobs"
)

type APIHandler struct {
	dbStore   *db.PostgresStore
	wsHub     *Hub
	jobMgr    *jobs.Manager
	watchlist *benchwatch.Watchlist
}

func SetupRouter(dbStore *db.PostgresStore, wsHub *Hub, jobMgr *jobs.Manager, watchlist *benchwatch.Watchlist) *gin.Engine {
	r := gin.Default()

	// Enable CORS — configurable via ALLOWED_ORIGINS env var
	// Production: ALLOWED_ORIGINS=https://esopforge.example.com
	// Development: ALLOWED_ORIGINS=http://localhost:3000 (or leave empty for *)
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{
		dbStore:   dbStore,
		wsHub:     wsHub,
		jobMgr:    jobMgr,
		watchlist: watchlist,
	}

	// ── Public endpoints (no auth) ─────────────────────────────
	pub := r.Group("/api/v1")
	{
		pub.GET("/health", handler.handleHealth)
		pub.GET("/stream", wsHub.Subscribe)
		pub.GET("/jobs", handler.handleListJobs)
		pub.GET("/jobs/:id", handler.handleGetJobStatus)
		pub.GET("/jobs/history", handler.handleJobHistory)
	}

	// ── Protected endpoints (require bearer token if API_AUTH_TOKEN set) ──
	auth := r.Group("/api/v1")
	auth.Use(AuthMiddleware())
	// Rate-limit protected endpoints to 30 req/min per IP (burst=5).
	// Synthesis jobs are the expensive path here — especially PSDKRO+EXORCISM.
	auth.Use(NewRateLimiter(30, 5).Middleware())
	{
		auth.POST("/jobs", handler.handleSubmitJob)
		auth.POST("/baselines/:name", handler.handleSetBaseline)
		auth.POST("/compare", handler.handleCompareCubeCounts)
	}

	// Serve static dashboard
	r.Static("/dashboard", "./public")

	return r
}

// handleHealth returns engine status and capabilities for service discovery.
func (h *APIHandler) handleHealth(c *gin.Context) {
	dbConnected := h.dbStore != nil

	c.JSON(http.StatusOK, gin.H{
		"status": "operational",
		"engine": "ESOP Forge v1.0",
		"capabilities": gin.H{
			"aig_collapse":    true,
			"psdkro_extract":  true,
			"exorcism_minify": true,
			"benchwatch":      true,
			"cube_metrics":    true,
		},
		"dbConnected": dbConnected,
	})
}
