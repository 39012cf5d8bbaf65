package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digicorp/employee-history/internal/adapters/http/middleware"
	"github.com/digicorp/employee-history/internal/core/department"
)

// DepartmentHandler は部署エンドポイントの HTTP 実装です。
type DepartmentHandler struct {
	svc    department.UseCase
	logger *slog.Logger
}

// NewDepartmentHandler は DepartmentHandler を生成します。
func NewDepartmentHandler(svc department.UseCase, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{svc: svc, logger: logger}
}

// Register は部署エンドポイントをルーターへ登録します。
func (h *DepartmentHandler) Register(r chi.Router) {
	r.Get("/api/employees/departments", h.handleListDepartments)
}

// handleListDepartments は GET /api/employees/departments を処理します。
func (h *DepartmentHandler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.svc.ListDepartments(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list departments failed",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		writeError(w, err)
		return
	}

	resp := make([]departmentResponse, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, toDepartmentResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}
