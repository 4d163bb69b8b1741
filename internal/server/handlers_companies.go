package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	apperrors "github.com/ariqM1/fullstack-jam/internal/errors"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListCompanies(c echo.Context) error {
	offset, limit, err := parsePagination(c)
	if err != nil {
		return err
	}

	page, err := s.app.ListCompanies(c.Request().Context(), offset, limit)
	if err != nil {
		return apperrors.Internal("failed to list companies", err)
	}

	if err := c.JSON(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLikeCompany(c echo.Context) error {
	return s.handleLikeChange(c, s.app.LikeCompany)
}

func (s *Server) handleUnlikeCompany(c echo.Context) error {
	return s.handleLikeChange(c, s.app.UnlikeCompany)
}

func (s *Server) handleLikeChange(c echo.Context, change func(ctx context.Context, companyID int64) error) error {
	companyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.Validation("invalid company ID").WithField("company_id", c.Param("id"))
	}

	if err := change(c.Request().Context(), companyID); err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return apperrors.NotFound("company not found").WithField("company_id", companyID)
		}
		return apperrors.Internal("failed to update liked companies", err).WithField("company_id", companyID)
	}

	if err := c.JSON(http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
