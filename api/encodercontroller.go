package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterEncoderRoutes registers the encoder inspection endpoint.
func RegisterEncoderRoutes(r *gin.Engine, deps Deps) {
	r.GET("/api/v1/encoder", encoderReport(deps))
}

// encoderReport exposes which ffmpeg encoder the render path will use
func encoderReport(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		choice := deps.Selector.Select()
		c.JSON(http.StatusOK, gin.H{
			"codec":    choice.Codec,
			"tier":     choice.Tier,
			"hardware": choice.Hardware(),
			"args":     choice.ExtraArgs,
			"threads":  deps.Selector.ThreadCount(),
		})
	}
}
