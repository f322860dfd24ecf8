package server

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every JSON response
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *Error                 `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

func respondJSON(c *gin.Context, status int, data interface{}, meta map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data, Meta: meta})
}

func respondError(c *gin.Context, err error) {
	apiErr := FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(apiErr.Status, Envelope{Error: apiErr})
}
