package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"imageprompt/pkg/schema"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "Image Prompt API",
		"status":  "ok",
	})
}

// GET /api/v1/schema
func (s *Server) handleGetSchema(c echo.Context) error {
	return c.JSON(http.StatusOK, schema.ResultSchema)
}
