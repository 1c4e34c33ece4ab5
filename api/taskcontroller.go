package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reelbot/task"
)

// RegisterTaskRoutes registers video generation task endpoints.
func RegisterTaskRoutes(r *gin.Engine, deps Deps) {
	g := r.Group("/api/v1/tasks")
	g.POST("", createTask(deps))
	g.GET("/:id", getTask(deps))
	g.DELETE("/:id", deleteTask(deps))
}

// createTask accepts generation params, records the task as pending,
// and runs the pipeline asynchronously. Returns 202 with the task ID.
func createTask(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params task.Params
		if err := c.ShouldBindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload: " + err.Error()})
			return
		}

		if params.Subject == "" && params.Script == "" && params.SourceText == "" && params.ArticleURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "one of subject, script, source_text, or article_url is required"})
			return
		}

		id := uuid.New().String()
		if err := deps.Store.Put(c.Request.Context(), &task.Status{
			ID:     id,
			State:  task.StatePending,
			Params: params,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record task"})
			return
		}

		log.Printf("📥 Received generation request: id=%s subject=%q", id, params.Subject)

		// Run asynchronously; status is tracked through the store
		go func() {
			if _, err := deps.Run(context.Background(), id, params); err != nil {
				log.Printf("❌ Task %s failed: %v", id, err)
			}
		}()

		c.JSON(http.StatusAccepted, gin.H{"id": id, "state": task.StatePending})
	}
}

// getTask returns the stored status for a task
func getTask(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := deps.Store.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, task.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// deleteTask removes a task's stored status
func deleteTask(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := deps.Store.Get(c.Request.Context(), id); errors.Is(err, task.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		if err := deps.Store.Delete(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
	}
}
