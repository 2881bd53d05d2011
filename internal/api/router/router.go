package router

import (
	"net/http"

	"github.com/cleanconnect/platform-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, jwtSecret string) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "marketplace-api-service",
		})
	})

	jobHandler := handler.NewJobHandler(deps)
	reviewHandler := handler.NewReviewHandler(deps)
	ledgerHandler := handler.NewLedgerHandler(deps)

	// API v1 routes, all behind bearer auth
	v1 := r.Group("/api/v1")
	v1.Use(AuthMiddleware(jwtSecret))
	{
		jobs := v1.Group("/jobs")
		{
			// POST /api/v1/jobs - Post a new cleaning job
			jobs.POST("", jobHandler.CreateJob)

			// GET /api/v1/jobs - List jobs with filtering and pagination
			jobs.GET("", jobHandler.ListJobs)

			// GET /api/v1/jobs/:job_id - Get job details
			jobs.GET("/:job_id", jobHandler.GetJob)

			// POST /api/v1/jobs/:job_id/cancel - Cancel a job
			jobs.POST("/:job_id/cancel", jobHandler.CancelJob)

			// Applications
			jobs.POST("/:job_id/applications", jobHandler.SubmitApplication)
			jobs.GET("/:job_id/applications", jobHandler.ListApplications)
			jobs.POST("/:job_id/accept", jobHandler.AcceptApplication)

			// Lifecycle progression
			jobs.POST("/:job_id/start", jobHandler.StartWork)
			jobs.POST("/:job_id/complete", jobHandler.CompleteWork)

			// Disputes
			jobs.POST("/:job_id/dispute", jobHandler.RaiseDispute)
			jobs.POST("/:job_id/resolve", jobHandler.ResolveDispute)

			// Reviews scoped to a job
			jobs.POST("/:job_id/reviews", reviewHandler.SubmitReview)
			jobs.GET("/:job_id/reviews", reviewHandler.ListJobReviews)

			// Per-job ledger
			jobs.GET("/:job_id/ledger", ledgerHandler.ListJobEntries)
			jobs.POST("/:job_id/ledger", ledgerHandler.RecordEntry)
		}

		reviews := v1.Group("/reviews")
		{
			// POST /api/v1/reviews/:review_id/response - Reviewee's one-shot reply
			reviews.POST("/:review_id/response", reviewHandler.AttachResponse)
		}

		ratings := v1.Group("/ratings")
		{
			// GET /api/v1/ratings/:subject_id - Aggregated rating profile
			ratings.GET("/:subject_id", reviewHandler.GetAggregate)
		}

		ledger := v1.Group("/ledger")
		{
			// GET /api/v1/ledger?counterparty_id=... - Money movements for one party
			ledger.GET("", ledgerHandler.ListCounterpartyEntries)

			// PATCH /api/v1/ledger/:entry_id - Progress a pending entry
			ledger.PATCH("/:entry_id", ledgerHandler.MarkEntry)
		}

		// GET /api/v1/settlement/quote - Fee breakdown preview
		v1.GET("/settlement/quote", ledgerHandler.SettlementQuote)
	}

	return r
}
