package handler

import (
	"errors"
	"net/http"

	"github.com/digicorp/employee-history/internal/core/employee"
)

// codeInternal は未分類の内部エラーに対する安定コードです。
const codeInternal = "internal_error"

var errorCodes = map[error]struct {
	status int
	code   string
}{
	employee.ErrEmployeeNotFound:       {http.StatusNotFound, "employee_not_found"},
	employee.ErrDepartmentNotFound:     {http.StatusNotFound, "department_not_found"},
	employee.ErrMalformedRequest:       {http.StatusBadRequest, "malformed_request"},
	employee.ErrInvalidSalary:          {http.StatusBadRequest, "invalid_salary"},
	employee.ErrInvalidTitleLength:     {http.StatusBadRequest, "invalid_title_length"},
	employee.ErrMalformedDate:          {http.StatusBadRequest, "malformed_date"},
	employee.ErrEmployeeNotCurrent:     {http.StatusBadRequest, "employee_not_current"},
	employee.ErrNoChangeRequested:      {http.StatusBadRequest, "no_change_requested"},
	employee.ErrPromotionBeforeHire:    {http.StatusBadRequest, "promotion_before_hire"},
	employee.ErrDuplicatePromotionDate: {http.StatusBadRequest, "duplicate_promotion_date"},
	employee.ErrDepartmentReentry:      {http.StatusBadRequest, "department_reentry"},
	employee.ErrInvalidPage:            {http.StatusBadRequest, "invalid_page"},
}

// mapError はドメインエラーを HTTP ステータスと安定コードへ変換します。
// 分類外のエラーはすべて 500 として扱います。
func mapError(err error) (status int, code string) {
	for sentinel, mapping := range errorCodes {
		if errors.Is(err, sentinel) {
			return mapping.status, mapping.code
		}
	}
	return http.StatusInternalServerError, codeInternal
}
