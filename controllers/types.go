package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poliscope/api-go/services"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Meta       interface{}     `json:"meta,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	Skip       int     `json:"skip"`
	Limit      int     `json:"limit"`
	TotalItems int64   `json:"totalItems"`
	NextCursor *string `json:"nextCursor,omitempty"`
}

// abortWithError maps service-layer sentinel errors onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalid):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
