package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	apperrors "github.com/ariqM1/fullstack-jam/internal/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// collectionMetadata is the list-endpoint projection of a collection.
type collectionMetadata struct {
	ID             uuid.UUID `json:"id"`
	CollectionName string    `json:"collection_name"`
}

func (s *Server) handleListCollections(c echo.Context) error {
	collections, err := s.app.ListCollections(c.Request().Context())
	if err != nil {
		return apperrors.Internal("failed to list collections", err)
	}

	out := make([]collectionMetadata, 0, len(collections))
	for _, col := range collections {
		out = append(out, collectionMetadata{ID: col.ID, CollectionName: col.CollectionName})
	}

	if err := c.JSON(http.StatusOK, out); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetCollection(c echo.Context) error {
	id, err := parseCollectionID(c.Param("id"))
	if err != nil {
		return err
	}

	offset, limit, err := parsePagination(c)
	if err != nil {
		return err
	}

	page, err := s.app.GetCollectionPage(c.Request().Context(), id, offset, limit)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionNotFound) {
			return apperrors.NotFound("collection not found").WithField("collection_id", id.String())
		}
		return apperrors.Internal("failed to load collection", err).WithField("collection_id", id.String())
	}

	if err := c.JSON(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func parseCollectionID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid collection ID").WithField("collection_id", raw)
	}
	return id, nil
}

// parsePagination reads offset/limit query params with the defaults and cap
// the grid UI expects.
func parsePagination(c echo.Context) (offset, limit int, err error) {
	offset, err = parseQueryInt(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if offset < 0 {
		return 0, 0, apperrors.Validation("offset must not be negative")
	}

	limit, err = parseQueryInt(c, "limit", defaultPageLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit < 1 {
		return 0, 0, apperrors.Validation("limit must be at least 1")
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return offset, limit, nil
}

func parseQueryInt(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation(name + " must be an integer").WithField(name, raw)
	}
	return n, nil
}
