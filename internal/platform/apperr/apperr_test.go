// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	testCases := []struct {
		name           string
		err            *apperr.AppError
		expectedCode   string
		expectedStatus int
	}{
		{"not found", apperr.NotFound("Product"), apperr.CodeNotFound, http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("nope"), apperr.CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("nope"), apperr.CodeForbidden, http.StatusForbidden},
		{"conflict", apperr.Conflict("taken"), apperr.CodeConflict, http.StatusConflict},
		{"validation", apperr.ValidationError("bad input"), apperr.CodeValidation, http.StatusBadRequest},
		{"internal", apperr.Internal(errors.New("boom")), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expectedCode, testCase.err.Code)
			assert.Equal(t, testCase.expectedStatus, testCase.err.HTTPStatus)
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Category not found", apperr.NotFound("Category").Error())
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "pq:")
	assert.ErrorIs(t, err, cause)
}

func TestValidationDetails(t *testing.T) {
	err := apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "name", Message: "is required"},
		apperr.FieldError{Field: "price", Message: "must not be negative"},
	)

	require.Len(t, err.Details, 2)
	assert.Equal(t, "name", err.Details[0].Field)
}

func TestAsTraversesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service_failed: %w", apperr.Conflict("Username already exists"))

	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeConflict, appError.Code)

	assert.True(t, apperr.IsCode(wrapped, apperr.CodeConflict))
	assert.False(t, apperr.IsCode(wrapped, apperr.CodeNotFound))
	assert.False(t, apperr.IsCode(errors.New("plain"), apperr.CodeConflict))
	assert.Nil(t, apperr.As(errors.New("plain")))
}
