package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/digicorp/employee-history/internal/core/employee"
	pgdb "github.com/digicorp/employee-history/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// EmployeeRepository は PostgreSQL を利用した社員と履歴セグメント永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// FindByNumber は社員番号で社員レコードと全履歴を取得します。
func (r *EmployeeRepository) FindByNumber(ctx context.Context, empNo int) (*employee.Employee, error) {
	return r.findByNumber(ctx, empNo, false)
}

// FindByNumberForUpdate は社員行を FOR UPDATE でロックした上で取得します。
// 同一社員への並行する昇進はこのロックで直列化されます。
func (r *EmployeeRepository) FindByNumberForUpdate(ctx context.Context, empNo int) (*employee.Employee, error) {
	return r.findByNumber(ctx, empNo, true)
}

func (r *EmployeeRepository) findByNumber(ctx context.Context, empNo int, forUpdate bool) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	query := `
        SELECT emp_no, birth_date, first_name, last_name, gender, hire_date
          FROM employees
         WHERE emp_no = $1
    `
	if forUpdate {
		query += " FOR UPDATE"
	}

	var emp employee.Employee
	if err := exec.QueryRow(ctx, query, empNo).Scan(
		&emp.EmpNo,
		&emp.BirthDate,
		&emp.FirstName,
		&emp.LastName,
		&emp.Gender,
		&emp.HireDate,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("postgres: find employee %d: %w", empNo, err)
	}
	emp.BirthDate = asDate(emp.BirthDate)
	emp.HireDate = asDate(emp.HireDate)

	var err error
	if emp.Salaries, err = r.loadSalaries(ctx, exec, empNo); err != nil {
		return nil, err
	}
	if emp.Titles, err = r.loadTitles(ctx, exec, empNo); err != nil {
		return nil, err
	}
	if emp.Departments, err = r.loadDepartments(ctx, exec, empNo); err != nil {
		return nil, err
	}
	if emp.Managers, err = r.loadManagers(ctx, exec, empNo); err != nil {
		return nil, err
	}

	return &emp, nil
}

func (r *EmployeeRepository) loadSalaries(ctx context.Context, exec pgdb.Queryer, empNo int) ([]employee.SalarySegment, error) {
	rows, err := exec.Query(ctx, `
        SELECT from_date, to_date, salary
          FROM salaries
         WHERE emp_no = $1
         ORDER BY to_date, from_date
    `, empNo)
	if err != nil {
		return nil, fmt.Errorf("postgres: load salaries: %w", err)
	}
	defer rows.Close()

	var segments []employee.SalarySegment
	for rows.Next() {
		var seg employee.SalarySegment
		if err := rows.Scan(&seg.FromDate, &seg.ToDate, &seg.Amount); err != nil {
			return nil, fmt.Errorf("postgres: scan salary segment: %w", err)
		}
		seg.SegmentBounds = normalizeBounds(seg.SegmentBounds)
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

func (r *EmployeeRepository) loadTitles(ctx context.Context, exec pgdb.Queryer, empNo int) ([]employee.TitleSegment, error) {
	rows, err := exec.Query(ctx, `
        SELECT from_date, to_date, title
          FROM titles
         WHERE emp_no = $1
         ORDER BY to_date, from_date
    `, empNo)
	if err != nil {
		return nil, fmt.Errorf("postgres: load titles: %w", err)
	}
	defer rows.Close()

	var segments []employee.TitleSegment
	for rows.Next() {
		var seg employee.TitleSegment
		if err := rows.Scan(&seg.FromDate, &seg.ToDate, &seg.Title); err != nil {
			return nil, fmt.Errorf("postgres: scan title segment: %w", err)
		}
		seg.SegmentBounds = normalizeBounds(seg.SegmentBounds)
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

func (r *EmployeeRepository) loadDepartments(ctx context.Context, exec pgdb.Queryer, empNo int) ([]employee.DeptSegment, error) {
	rows, err := exec.Query(ctx, `
        SELECT from_date, to_date, dept_no
          FROM dept_emp
         WHERE emp_no = $1
         ORDER BY to_date, from_date
    `, empNo)
	if err != nil {
		return nil, fmt.Errorf("postgres: load department assignments: %w", err)
	}
	defer rows.Close()

	var segments []employee.DeptSegment
	for rows.Next() {
		var seg employee.DeptSegment
		if err := rows.Scan(&seg.FromDate, &seg.ToDate, &seg.DeptNo); err != nil {
			return nil, fmt.Errorf("postgres: scan department segment: %w", err)
		}
		seg.SegmentBounds = normalizeBounds(seg.SegmentBounds)
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

func (r *EmployeeRepository) loadManagers(ctx context.Context, exec pgdb.Queryer, empNo int) ([]employee.ManagerSegment, error) {
	rows, err := exec.Query(ctx, `
        SELECT from_date, to_date, dept_no
          FROM dept_manager
         WHERE emp_no = $1
         ORDER BY to_date, from_date
    `, empNo)
	if err != nil {
		return nil, fmt.Errorf("postgres: load manager assignments: %w", err)
	}
	defer rows.Close()

	var segments []employee.ManagerSegment
	for rows.Next() {
		var seg employee.ManagerSegment
		if err := rows.Scan(&seg.FromDate, &seg.ToDate, &seg.DeptNo); err != nil {
			return nil, fmt.Errorf("postgres: scan manager segment: %w", err)
		}
		seg.SegmentBounds = normalizeBounds(seg.SegmentBounds)
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

// ListByDepartment は指定部署に配属されている社員の要約を社員番号順で返します。
func (r *EmployeeRepository) ListByDepartment(ctx context.Context, deptNo string, limit, offset int) ([]*employee.EmployeeSummary, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT e.emp_no, e.hire_date, e.first_name, e.last_name
          FROM dept_emp de
          JOIN employees e ON e.emp_no = de.emp_no
         WHERE de.dept_no = $1
         ORDER BY e.emp_no
         LIMIT $2
        OFFSET $3
    `, deptNo, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres: list employees by department: %w", err)
	}
	defer rows.Close()

	summaries := make([]*employee.EmployeeSummary, 0, limit)
	for rows.Next() {
		var s employee.EmployeeSummary
		if err := rows.Scan(&s.EmpNo, &s.HireDate, &s.FirstName, &s.LastName); err != nil {
			return nil, fmt.Errorf("postgres: scan employee summary: %w", err)
		}
		s.HireDate = asDate(s.HireDate)
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

// InsertSalary は給与セグメントを挿入します。
func (r *EmployeeRepository) InsertSalary(ctx context.Context, empNo int, seg employee.SalarySegment) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO salaries (emp_no, salary, from_date, to_date)
        VALUES ($1, $2, $3, $4)
    `, empNo, seg.Amount, seg.FromDate, seg.ToDate)
	return translatePgError(err)
}

// InsertTitle は役職セグメントを挿入します。
func (r *EmployeeRepository) InsertTitle(ctx context.Context, empNo int, seg employee.TitleSegment) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO titles (emp_no, title, from_date, to_date)
        VALUES ($1, $2, $3, $4)
    `, empNo, seg.Title, seg.FromDate, seg.ToDate)
	return translatePgError(err)
}

// InsertDepartment は部署配属セグメントを挿入します。
func (r *EmployeeRepository) InsertDepartment(ctx context.Context, empNo int, seg employee.DeptSegment) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO dept_emp (emp_no, dept_no, from_date, to_date)
        VALUES ($1, $2, $3, $4)
    `, empNo, seg.DeptNo, seg.FromDate, seg.ToDate)
	return translatePgError(err)
}

// InsertManager はマネージャ配属セグメントを挿入します。
func (r *EmployeeRepository) InsertManager(ctx context.Context, empNo int, seg employee.ManagerSegment) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO dept_manager (emp_no, dept_no, from_date, to_date)
        VALUES ($1, $2, $3, $4)
    `, empNo, seg.DeptNo, seg.FromDate, seg.ToDate)
	return translatePgError(err)
}

// CloseSegment は key が指すセグメントの to_date を書き換えます。
// 閉じたセグメントは以後変更されません。
func (r *EmployeeRepository) CloseSegment(ctx context.Context, key employee.SegmentKey, newToDate time.Time) error {
	table, err := segmentTable(key.Category)
	if err != nil {
		return err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET to_date = $1 WHERE emp_no = $2 AND from_date = $3`, table),
		newToDate, key.EmpNo, key.FromDate,
	)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres: close %s segment: no row for emp_no=%d from_date=%s", key.Category, key.EmpNo, key.FromDate.Format("2006-01-02"))
	}
	return nil
}

func segmentTable(category employee.SegmentCategory) (string, error) {
	switch category {
	case employee.CategorySalary:
		return "salaries", nil
	case employee.CategoryTitle:
		return "titles", nil
	case employee.CategoryDepartment:
		return "dept_emp", nil
	case employee.CategoryManager:
		return "dept_manager", nil
	default:
		return "", fmt.Errorf("postgres: unknown segment category %q", category)
	}
}

func translatePgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return employee.ErrDuplicatePromotionDate
		case foreignKeyViolationCode:
			switch pgErr.ConstraintName {
			case "dept_emp_dept_no_fkey", "dept_manager_dept_no_fkey":
				return employee.ErrDepartmentNotFound
			default:
				return employee.ErrEmployeeNotFound
			}
		}
	}

	return err
}

func normalizeBounds(b employee.SegmentBounds) employee.SegmentBounds {
	return employee.SegmentBounds{FromDate: asDate(b.FromDate), ToDate: asDate(b.ToDate)}
}

func asDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
