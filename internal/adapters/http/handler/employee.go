package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/digicorp/employee-history/internal/adapters/http/middleware"
	"github.com/digicorp/employee-history/internal/core/employee"
	"github.com/digicorp/employee-history/internal/platform/metrics"
)

// EmployeeHandler は社員エンドポイントの HTTP 実装です。
type EmployeeHandler struct {
	svc     employee.UseCase
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase, logger *slog.Logger, m *metrics.Metrics) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, logger: logger, metrics: m}
}

// Register は社員エンドポイントをルーターへ登録します。
func (h *EmployeeHandler) Register(r chi.Router) {
	r.Get("/api/employees", h.handleListByDepartment)
	r.Get("/api/employees/{empNo}", h.handleGetEmployee)
	r.Post("/api/employees/promote", h.handlePromote)
}

// promoteRequest は昇進エンドポイントの JSON ボディです。
// ポインタで受けることで「欠落」と「ゼロ値」を区別します。
type promoteRequest struct {
	EmpNo         *int    `json:"empNo"`
	NewTitle      *string `json:"newTitle"`
	NewSalary     *int    `json:"newSalary"`
	NewDeptNo     *string `json:"newDeptNo"`
	PromotionDate *string `json:"promotionDate"`
}

// handlePromote は POST /api/employees/promote を処理します。
// 成功時は 201 を返し、検証エラーは 400/404 へ分類されます。
func (h *EmployeeHandler) handlePromote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var body promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.failPromotion(w, employee.ErrMalformedRequest)
		return
	}

	req := employee.PromotionRequest{
		EmpNo:     body.EmpNo,
		NewTitle:  body.NewTitle,
		NewSalary: body.NewSalary,
		NewDeptNo: body.NewDeptNo,
	}

	if body.PromotionDate != nil && *body.PromotionDate != "" {
		date, err := employee.ParseDate(*body.PromotionDate)
		if err != nil {
			h.failPromotion(w, err)
			return
		}
		req.PromotionDate = &date
	}

	if err := employee.ValidatePromotionRequest(req); err != nil {
		h.failPromotion(w, err)
		return
	}

	if err := h.svc.Promote(ctx, req); err != nil {
		if _, code := mapError(err); code == codeInternal {
			h.logger.ErrorContext(ctx, "promotion failed",
				"request_id", middleware.RequestID(ctx),
				"emp_no", derefInt(body.EmpNo),
				"error", err,
			)
		}
		h.failPromotion(w, err)
		return
	}

	h.metrics.IncPromotions()
	h.logger.InfoContext(ctx, "employee promoted",
		"request_id", middleware.RequestID(ctx),
		"emp_no", derefInt(body.EmpNo),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "employee promoted successfully"})
}

func (h *EmployeeHandler) failPromotion(w http.ResponseWriter, err error) {
	_, code := mapError(err)
	h.metrics.IncPromotionFailure(code)
	writeError(w, err)
}

// handleGetEmployee は GET /api/employees/{empNo} を処理します。
func (h *EmployeeHandler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	empNo, err := strconv.Atoi(chi.URLParam(r, "empNo"))
	if err != nil {
		writeError(w, employee.ErrMalformedRequest)
		return
	}

	found, err := h.svc.GetEmployee(r.Context(), empNo)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			h.logger.ErrorContext(r.Context(), "get employee failed",
				"request_id", middleware.RequestID(r.Context()),
				"emp_no", empNo,
				"error", err,
			)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeResponse(found))
}

// handleListByDepartment は GET /api/employees?deptNo=d005&page=1 を処理します。
func (h *EmployeeHandler) handleListByDepartment(w http.ResponseWriter, r *http.Request) {
	deptNo := r.URL.Query().Get("deptNo")
	if deptNo == "" {
		writeError(w, employee.ErrMalformedRequest)
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, employee.ErrInvalidPage)
			return
		}
		page = parsed
	}

	summaries, err := h.svc.ListByDepartment(r.Context(), deptNo, page)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]employeeSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, toEmployeeSummaryResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
