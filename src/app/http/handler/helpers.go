// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Parsing and validating HTTP requests
// - Calling use case methods
// - Converting results to HTTP responses
package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/response"
	"monhaven/src/app/middleware"
)

// paramID parses a positive int64 path parameter, replying 400 on failure.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, fmt.Sprintf("invalid %s", name), middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}
