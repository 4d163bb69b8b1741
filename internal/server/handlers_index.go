package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleIndex renders into a buffer first so a template error still yields a
// proper error response instead of a half-written page.
func (s *Server) handleIndex(c echo.Context) error {
	var buf bytes.Buffer
	if err := s.indexTemplate.Execute(&buf, nil); err != nil {
		return fmt.Errorf("failed to render index template: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
