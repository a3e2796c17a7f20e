// Package controllers contains the echo HTTP handlers. Controllers only
// bind/validate payloads and translate service results into the response
// envelope; all behavior lives in the services.
package controllers

import (
	"strconv"

	apperrors "atolye-takip/pkg/errors"

	"github.com/labstack/echo/v4"
)

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewInvalidInputError("invalid %s parameter", name)
	}
	return id, nil
}

func parseOptionalQueryID(ctx echo.Context, name string) uint64 {
	id, _ := strconv.ParseUint(ctx.QueryParam(name), 10, 64)
	return id
}
