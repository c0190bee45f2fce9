package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("section: %w", perrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{"invalid", perrors.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"empty", perrors.ErrEmptyComposition, http.StatusUnprocessableEntity, "empty_composition"},
		{"persistence", fmt.Errorf("%w: boom", perrors.ErrPersistenceFailure), http.StatusBadGateway, "persistence_failure"},
		{"explicit", New(http.StatusTeapot, "teapot", errors.New("x")), http.StatusTeapot, "teapot"},
		{"other", errors.New("x"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := From(tc.err)
			if got.Status != tc.status || got.Code != tc.code {
				t.Fatalf("From: want=%d/%s got=%d/%s", tc.status, tc.code, got.Status, got.Code)
			}
		})
	}
	if From(nil) != nil {
		t.Fatalf("From(nil): want nil")
	}
}
