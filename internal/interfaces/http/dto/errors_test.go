package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"unauthorized", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"insufficient stock", "INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"concurrency conflict", "CONCURRENCY_CONFLICT", http.StatusConflict},
		{"already initialized", "ALREADY_INITIALIZED", http.StatusConflict},
		{"account locked", "ACCOUNT_LOCKED", http.StatusForbidden},
		{"unknown code falls back to 500", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse([]ValidationDetail{
		{Field: "quantity", Message: "must be at least 1"},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
}

func TestListRequestNormalize(t *testing.T) {
	var req ListRequest
	req.Normalize()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, "created_at", req.OrderBy)
	assert.Equal(t, "desc", req.OrderDir)
}
