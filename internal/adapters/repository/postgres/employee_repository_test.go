package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"

	"github.com/digicorp/employee-history/internal/core/employee"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func expectEmployeeRow(mock pgxmock.PgxPoolIface, empNo int, forUpdate bool) {
	query := `
        SELECT emp_no, birth_date, first_name, last_name, gender, hire_date
          FROM employees
         WHERE emp_no = $1
    `
	if forUpdate {
		query += " FOR UPDATE"
	}

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(empNo).
		WillReturnRows(pgxmock.NewRows([]string{"emp_no", "birth_date", "first_name", "last_name", "gender", "hire_date"}).
			AddRow(empNo, date(1990, time.May, 10), "Mayumi", "Schueller", "F", date(2020, time.January, 1)))
}

func expectHistoryRows(mock pgxmock.PgxPoolIface, empNo int) {
	mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT from_date, to_date, salary
          FROM salaries
         WHERE emp_no = $1
         ORDER BY to_date, from_date
    `)).
		WithArgs(empNo).
		WillReturnRows(pgxmock.NewRows([]string{"from_date", "to_date", "salary"}).
			AddRow(date(2020, time.January, 1), employee.OpenEndedDate, 50000))

	mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT from_date, to_date, title
          FROM titles
         WHERE emp_no = $1
         ORDER BY to_date, from_date
    `)).
		WithArgs(empNo).
		WillReturnRows(pgxmock.NewRows([]string{"from_date", "to_date", "title"}).
			AddRow(date(2020, time.January, 1), employee.OpenEndedDate, "Engineer"))

	mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT from_date, to_date, dept_no
          FROM dept_emp
         WHERE emp_no = $1
         ORDER BY to_date, from_date
    `)).
		WithArgs(empNo).
		WillReturnRows(pgxmock.NewRows([]string{"from_date", "to_date", "dept_no"}).
			AddRow(date(2020, time.January, 1), employee.OpenEndedDate, "d001"))

	mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT from_date, to_date, dept_no
          FROM dept_manager
         WHERE emp_no = $1
         ORDER BY to_date, from_date
    `)).
		WithArgs(empNo).
		WillReturnRows(pgxmock.NewRows([]string{"from_date", "to_date", "dept_no"}))
}

func TestEmployeeRepository_FindByNumber(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	expectEmployeeRow(mock, 10001, false)
	expectHistoryRows(mock, 10001)

	repo := NewEmployeeRepository(mock)
	emp, err := repo.FindByNumber(context.Background(), 10001)
	if err != nil {
		t.Fatalf("FindByNumber returned error: %v", err)
	}

	if emp.EmpNo != 10001 || emp.FirstName != "Mayumi" {
		t.Fatalf("unexpected employee: %+v", emp)
	}
	if len(emp.Salaries) != 1 || emp.Salaries[0].Amount != 50000 {
		t.Fatalf("unexpected salary history: %+v", emp.Salaries)
	}
	if !emp.Salaries[0].Open() {
		t.Fatalf("expected open salary segment, got %+v", emp.Salaries[0])
	}
	if len(emp.Managers) != 0 {
		t.Fatalf("expected empty manager history, got %+v", emp.Managers)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByNumberForUpdate_LocksRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	expectEmployeeRow(mock, 10001, true)
	expectHistoryRows(mock, 10001)

	repo := NewEmployeeRepository(mock)
	if _, err := repo.FindByNumberForUpdate(context.Background(), 10001); err != nil {
		t.Fatalf("FindByNumberForUpdate returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByNumber_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT emp_no").
		WithArgs(99999).
		WillReturnRows(pgxmock.NewRows([]string{"emp_no", "birth_date", "first_name", "last_name", "gender", "hire_date"}))

	repo := NewEmployeeRepository(mock)
	if _, err := repo.FindByNumber(context.Background(), 99999); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_CloseSegment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		category employee.SegmentCategory
		table    string
	}{
		{employee.CategorySalary, "salaries"},
		{employee.CategoryTitle, "titles"},
		{employee.CategoryDepartment, "dept_emp"},
		{employee.CategoryManager, "dept_manager"},
	}

	for _, tc := range cases {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("failed to create mock pool: %v", err)
		}

		from := date(2020, time.January, 1)
		to := date(2024, time.January, 1)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE `+tc.table+` SET to_date = $1 WHERE emp_no = $2 AND from_date = $3`)).
			WithArgs(to, 10001, from).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewEmployeeRepository(mock)
		key := employee.SegmentKey{EmpNo: 10001, Category: tc.category, FromDate: from}
		if err := repo.CloseSegment(context.Background(), key, to); err != nil {
			t.Fatalf("CloseSegment(%s) returned error: %v", tc.category, err)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations for %s: %v", tc.category, err)
		}
		mock.Close()
	}
}

func TestEmployeeRepository_CloseSegment_NoRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE salaries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewEmployeeRepository(mock)
	key := employee.SegmentKey{EmpNo: 10001, Category: employee.CategorySalary, FromDate: date(2020, time.January, 1)}
	if err := repo.CloseSegment(context.Background(), key, date(2024, time.January, 1)); err == nil {
		t.Fatal("expected error when no row matches")
	}
}

func TestEmployeeRepository_CloseSegment_UnknownCategory(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	key := employee.SegmentKey{EmpNo: 10001, Category: "bonus", FromDate: date(2020, time.January, 1)}
	if err := repo.CloseSegment(context.Background(), key, date(2024, time.January, 1)); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestEmployeeRepository_InsertSalary_TranslatesUniqueViolation(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("INSERT INTO salaries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	repo := NewEmployeeRepository(mock)
	seg := employee.SalarySegment{
		SegmentBounds: employee.SegmentBounds{FromDate: date(2024, time.January, 1), ToDate: employee.OpenEndedDate},
		Amount:        60000,
	}
	if err := repo.InsertSalary(context.Background(), 10001, seg); !errors.Is(err, employee.ErrDuplicatePromotionDate) {
		t.Fatalf("expected ErrDuplicatePromotionDate, got %v", err)
	}
}

func TestTranslatePgError(t *testing.T) {
	t.Parallel()

	deptFk := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "dept_emp_dept_no_fkey"}
	if !errors.Is(translatePgError(deptFk), employee.ErrDepartmentNotFound) {
		t.Fatal("expected dept fk violation to map to ErrDepartmentNotFound")
	}

	empFk := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "salaries_emp_no_fkey"}
	if !errors.Is(translatePgError(empFk), employee.ErrEmployeeNotFound) {
		t.Fatal("expected employee fk violation to map to ErrEmployeeNotFound")
	}

	other := errors.New("other")
	if translatePgError(other) != other {
		t.Fatal("unexpected translation for generic error")
	}

	if translatePgError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestEmployeeRepository_ListByDepartment(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT e.emp_no, e.hire_date, e.first_name, e.last_name
          FROM dept_emp de
          JOIN employees e ON e.emp_no = de.emp_no
         WHERE de.dept_no = $1
         ORDER BY e.emp_no
         LIMIT $2
        OFFSET $3
    `)).
		WithArgs("d005", 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"emp_no", "hire_date", "first_name", "last_name"}).
			AddRow(10001, date(2020, time.January, 1), "Mayumi", "Schueller").
			AddRow(10002, date(2021, time.April, 12), "Georgi", "Facello"))

	repo := NewEmployeeRepository(mock)
	summaries, err := repo.ListByDepartment(context.Background(), "d005", 20, 0)
	if err != nil {
		t.Fatalf("ListByDepartment returned error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].EmpNo != 10001 || summaries[1].LastName != "Facello" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
