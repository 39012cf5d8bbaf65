package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/digicorp/employee-history/internal/core/department"
	"github.com/digicorp/employee-history/internal/core/employee"
)

const dateLayout = "2006-01-02"

// errorResponse はエラー応答の JSON エンベロープです。
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type departmentResponse struct {
	DeptNo   string `json:"deptNo"`
	DeptName string `json:"deptName"`
}

type employeeSummaryResponse struct {
	EmpNo     int    `json:"empNo"`
	HireDate  string `json:"hireDate"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type segmentResponse struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Salary   *int   `json:"salary,omitempty"`
	Title    string `json:"title,omitempty"`
	DeptNo   string `json:"deptNo,omitempty"`
}

type employeeResponse struct {
	EmpNo       int               `json:"empNo"`
	BirthDate   string            `json:"birthDate"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Gender      string            `json:"gender"`
	HireDate    string            `json:"hireDate"`
	Salaries    []segmentResponse `json:"salaryList"`
	Titles      []segmentResponse `json:"titleList"`
	Departments []segmentResponse `json:"deptEmpList"`
	Managers    []segmentResponse `json:"deptManagerList"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := mapError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "unexpected internal error"
	}
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func toDepartmentResponse(d *department.Department) departmentResponse {
	return departmentResponse{DeptNo: d.DeptNo, DeptName: d.DeptName}
}

func toEmployeeSummaryResponse(s *employee.EmployeeSummary) employeeSummaryResponse {
	return employeeSummaryResponse{
		EmpNo:     s.EmpNo,
		HireDate:  formatDate(s.HireDate),
		FirstName: s.FirstName,
		LastName:  s.LastName,
	}
}

func toEmployeeResponse(emp *employee.Employee) employeeResponse {
	resp := employeeResponse{
		EmpNo:       emp.EmpNo,
		BirthDate:   formatDate(emp.BirthDate),
		FirstName:   emp.FirstName,
		LastName:    emp.LastName,
		Gender:      emp.Gender,
		HireDate:    formatDate(emp.HireDate),
		Salaries:    make([]segmentResponse, 0, len(emp.Salaries)),
		Titles:      make([]segmentResponse, 0, len(emp.Titles)),
		Departments: make([]segmentResponse, 0, len(emp.Departments)),
		Managers:    make([]segmentResponse, 0, len(emp.Managers)),
	}

	for _, seg := range emp.Salaries {
		amount := seg.Amount
		resp.Salaries = append(resp.Salaries, segmentResponse{
			FromDate: formatDate(seg.FromDate),
			ToDate:   formatDate(seg.ToDate),
			Salary:   &amount,
		})
	}
	for _, seg := range emp.Titles {
		resp.Titles = append(resp.Titles, segmentResponse{
			FromDate: formatDate(seg.FromDate),
			ToDate:   formatDate(seg.ToDate),
			Title:    seg.Title,
		})
	}
	for _, seg := range emp.Departments {
		resp.Departments = append(resp.Departments, segmentResponse{
			FromDate: formatDate(seg.FromDate),
			ToDate:   formatDate(seg.ToDate),
			DeptNo:   seg.DeptNo,
		})
	}
	for _, seg := range emp.Managers {
		resp.Managers = append(resp.Managers, segmentResponse{
			FromDate: formatDate(seg.FromDate),
			ToDate:   formatDate(seg.ToDate),
			DeptNo:   seg.DeptNo,
		})
	}

	return resp
}
