package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"reelbot/encoder"
	"reelbot/task"
)

// Runner starts a pipeline run for a task
type Runner func(ctx context.Context, id string, params task.Params) (*task.Status, error)

// Deps are the collaborators the HTTP surface needs
type Deps struct {
	Store    task.Store
	Run      Runner
	Selector *encoder.Selector
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterTaskRoutes(r, deps)
	RegisterEncoderRoutes(r, deps)
	RegisterHealthRoutes(r)
	return r
}
