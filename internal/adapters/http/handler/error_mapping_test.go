package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/digicorp/employee-history/internal/core/employee"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	status, code := mapError(employee.ErrEmployeeNotFound)
	if status != http.StatusNotFound || code != "employee_not_found" {
		t.Fatalf("unexpected mapping: %d %q", status, code)
	}

	// ラップされたエラーも errors.Is で分類される
	wrapped := fmt.Errorf("promote: %w", employee.ErrDepartmentReentry)
	status, code = mapError(wrapped)
	if status != http.StatusBadRequest || code != "department_reentry" {
		t.Fatalf("unexpected mapping for wrapped error: %d %q", status, code)
	}

	status, code = mapError(errors.New("unexpected"))
	if status != http.StatusInternalServerError || code != codeInternal {
		t.Fatalf("unexpected mapping for unknown error: %d %q", status, code)
	}
}
