package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	apperrors "github.com/ariqM1/fullstack-jam/internal/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type copySelectedRequest struct {
	CompanyIDs []int64 `json:"company_ids"`
}

func (s *Server) handleCopySelected(c echo.Context) error {
	sourceID, targetID, err := parseCopyPair(c)
	if err != nil {
		return err
	}

	var req copySelectedRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	accepted, err := s.app.CopySelected(c.Request().Context(), sourceID, targetID, req.CompanyIDs)
	if err != nil {
		return mapCopyError(err, sourceID, targetID)
	}

	if err := c.JSON(http.StatusAccepted, accepted); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCopyAll(c echo.Context) error {
	sourceID, targetID, err := parseCopyPair(c)
	if err != nil {
		return err
	}

	accepted, err := s.app.CopyAll(c.Request().Context(), sourceID, targetID)
	if err != nil {
		return mapCopyError(err, sourceID, targetID)
	}

	if err := c.JSON(http.StatusAccepted, accepted); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleOperationStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.Validation("invalid operation ID").WithField("operation_id", c.Param("id"))
	}

	op, err := s.app.OperationStatus(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOperationNotFound) {
			return apperrors.NotFound("operation not found").WithField("operation_id", id.String())
		}
		return apperrors.Internal("failed to load operation", err).WithField("operation_id", id.String())
	}

	if err := c.JSON(http.StatusOK, op); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func parseCopyPair(c echo.Context) (sourceID, targetID uuid.UUID, err error) {
	sourceID, err = uuid.Parse(c.Param("source"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.Validation("invalid source collection ID").WithField("source", c.Param("source"))
	}
	targetID, err = uuid.Parse(c.Param("target"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.Validation("invalid target collection ID").WithField("target", c.Param("target"))
	}
	return sourceID, targetID, nil
}

func mapCopyError(err error, sourceID, targetID uuid.UUID) error {
	switch {
	case errors.Is(err, domain.ErrCollectionNotFound):
		return apperrors.NotFound("collection not found").
			WithField("source", sourceID.String()).
			WithField("target", targetID.String())
	case errors.Is(err, domain.ErrSameCollection):
		return apperrors.Validation("source and target collection must differ")
	case errors.Is(err, domain.ErrNoCompaniesSelected):
		return apperrors.Validation("no companies selected")
	case errors.Is(err, domain.ErrCompaniesNotInSource):
		return apperrors.Validation("some companies not found in source collection")
	default:
		return apperrors.Internal("failed to start copy", err).
			WithField("source", sourceID.String()).
			WithField("target", targetID.String())
	}
}
