package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid cutoffs", inner)

	if err.Error() != "invalid cutoffs: parse failed" {
		t.Errorf("expected 'invalid cutoffs: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty cutoffs")

	wrapped := fmt.Errorf("evaluate: %w", original)
	doubleWrapped := fmt.Errorf("job val: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty cutoffs" {
		t.Errorf("expected 'empty cutoffs', got %q", ve.Message)
	}
}

func TestCutoffBoundError_Message(t *testing.T) {
	err := apperr.NewCutoffBound([]int{2, 5}, [2]int{3, 4})
	assert.Contains(t, err.Error(), "[2 5]")
	assert.Contains(t, err.Error(), "[3 4]")
}

func TestShapeError_Message(t *testing.T) {
	err := apperr.NewShape([]int{2, 2, 2}, "")
	assert.Contains(t, err.Error(), "[2 2 2]")
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "validation", err: apperr.NewValidation("x"), want: true},
		{name: "shape", err: fmt.Errorf("wrap: %w", apperr.NewShape([]int{3}, "")), want: true},
		{name: "cutoff bound", err: apperr.NewCutoffBound([]int{9}, [2]int{1, 4}), want: true},
		{name: "config type", err: apperr.NewInvalidConfigType("gpu", 1.5, "int"), want: true},
		{name: "index", err: apperr.NewIndex("relevance", 3, 2), want: false},
		{name: "plain", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.IsValidation(tt.err))
		})
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "cutoff bound", err: apperr.NewCutoffBound([]int{9}, [2]int{1, 4}), status: http.StatusBadRequest},
		{name: "shape", err: apperr.NewShape([]int{4}, ""), status: http.StatusBadRequest},
		{name: "index", err: apperr.NewIndex("relevance", 3, 2), status: http.StatusUnprocessableEntity},
		{name: "echo http error", err: echo.NewHTTPError(http.StatusNotFound, "missing"), status: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
