package store

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	newsharvest "github.com/pevans/newsharvest"
)

// APIServer serves recorded harvest runs over HTTP.
type APIServer struct {
	store *HarvestStore
}

// NewAPIServer creates an API server backed by the given store.
func NewAPIServer(store *HarvestStore) *APIServer {
	return &APIServer{
		store: store,
	}
}

// SetupRouter configures the Gin router with all harvest API routes.
func (s *APIServer) SetupRouter() *gin.Engine {
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	api := router.Group("/api/v1")
	api.GET("/runs", s.HandleListRuns)
	api.GET("/runs/:id", s.HandleGetRun)
	api.GET("/runs/:id/articles", s.HandleRunArticles)
	api.GET("/articles", s.HandleLatestArticles)

	return router
}

// ListRunsResponse is the response for GET /api/v1/runs.
type ListRunsResponse struct {
	Runs  []Run `json:"runs"`
	Total int   `json:"total"`
}

// RunArticlesResponse is the response for GET /api/v1/runs/{id}/articles.
type RunArticlesResponse struct {
	Run      Run                              `json:"run"`
	Articles map[string][]newsharvest.Article `json:"articles"`
}

// LatestArticlesResponse is the response for GET /api/v1/articles.
type LatestArticlesResponse struct {
	Run      Run                   `json:"run"`
	Articles []newsharvest.Article `json:"articles"`
	Total    int                   `json:"total"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

// errorResponse creates a standardized error response body.
func errorResponse(code, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// handleError maps store errors to HTTP responses.
func (s *APIServer) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRunNotFound):
		c.JSON(http.StatusNotFound, errorResponse("not_found", err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to process request"))
	}
}

// HandleListRuns handles GET /api/v1/runs.
func (s *APIServer) HandleListRuns(c *gin.Context) {
	runs, err := s.store.ListRuns()
	if err != nil {
		s.handleError(c, err)
		return
	}
	if runs == nil {
		runs = []Run{}
	}

	c.JSON(http.StatusOK, ListRunsResponse{
		Runs:  runs,
		Total: len(runs),
	})
}

// HandleGetRun handles GET /api/v1/runs/{id}.
func (s *APIServer) HandleGetRun(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_parameter", "Invalid run ID"))
		return
	}

	run, err := s.store.GetRun(runID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// HandleRunArticles handles GET /api/v1/runs/{id}/articles, returning
// the run's articles grouped by source.
func (s *APIServer) HandleRunArticles(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_parameter", "Invalid run ID"))
		return
	}

	run, err := s.store.GetRun(runID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	articles, err := s.store.RunArticles(runID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, RunArticlesResponse{
		Run:      *run,
		Articles: articles,
	})
}

// HandleLatestArticles handles GET /api/v1/articles: a flat page of the
// most recent run's articles, optionally filtered by source.
func (s *APIServer) HandleLatestArticles(c *gin.Context) {
	run, err := s.store.LatestRun()
	if err != nil {
		s.handleError(c, err)
		return
	}

	limit := parseIntParam(c, "limit", 50)
	offset := parseIntParam(c, "offset", 0)
	source := c.Query("source")

	articles, err := s.store.ListArticles(run.RunID, source, limit, offset)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, LatestArticlesResponse{
		Run:      *run,
		Articles: articles,
		Total:    run.ArticleCount,
		Limit:    limit,
		Offset:   offset,
	})
}

// parseIntParam reads an integer query parameter, falling back to the
// default on absence or garbage.
func parseIntParam(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
