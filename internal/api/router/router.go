package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solosphere/server/internal/api/handler"
)

// Options configures router-level behavior.
type Options struct {
	// CORSOrigin is the single allowed browser origin; credentials are
	// always allowed so the session cookie travels with requests.
	CORSOrigin string
}

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, opts Options) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware(opts.CORSOrigin))

	authRequired := AuthMiddleware(deps.Tokens, deps.Logger)

	jobHandler := handler.NewJobHandler(deps)
	bidHandler := handler.NewBidHandler(deps)
	authHandler := handler.NewAuthHandler(deps)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "SoloSphere server is running")
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "solosphere-api-service",
		})
	})

	// Session cookie issuance and teardown
	r.POST("/jwt", authHandler.IssueToken)
	r.POST("/logout", authHandler.Logout)

	// Jobs
	r.POST("/add-job", authRequired, jobHandler.CreateJob)
	r.GET("/jobs", jobHandler.ListJobs)
	r.GET("/jobs/:email", authRequired, jobHandler.ListJobsByOwner)
	r.GET("/job/:id", jobHandler.GetJob)
	r.PUT("/update-job/:id", authRequired, jobHandler.UpdateJob)
	r.DELETE("/jobs/:id", authRequired, jobHandler.DeleteJob)
	r.GET("/all-jobs", jobHandler.SearchJobs)

	// Bids
	r.POST("/add-bid", authRequired, bidHandler.PlaceBid)
	r.GET("/bids/:email", authRequired, bidHandler.ListBids)
	r.PATCH("/bid-status-update/:id", authRequired, bidHandler.UpdateBidStatus)

	return r
}
