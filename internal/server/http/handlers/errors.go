package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/adapter/backend"
	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/server/http/dto"
	"github.com/polkiloo/iowasensors/internal/usecase"
)

// writeError maps domain and backend errors to console responses.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validation *usecase.ValidationError
	if errors.As(err, &validation) {
		problems := make([]dto.Problem, 0, len(validation.Problems))
		for _, p := range validation.Problems {
			problems = append(problems, dto.Problem{Field: p.Field, Message: p.Message})
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validation.Error(), Problems: problems})
		return
	}

	var status *backend.StatusError
	if errors.As(err, &status) {
		code := http.StatusBadGateway
		if status.Code >= 400 && status.Code < 500 {
			code = status.Code
		}
		c.JSON(code, dto.ErrorResponse{Error: status.Message()})
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authenticated"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotMounted), errors.Is(err, domainErrors.ErrStale):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}
