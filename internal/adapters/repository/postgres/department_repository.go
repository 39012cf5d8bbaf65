package postgres

import (
	"context"
	"fmt"

	"github.com/digicorp/employee-history/internal/core/department"
	pgdb "github.com/digicorp/employee-history/internal/platform/db/postgres"
)

// DepartmentRepository は PostgreSQL を利用した部署永続化の実装です。
type DepartmentRepository struct {
	pool pgdb.Queryer
}

// NewDepartmentRepository は DepartmentRepository を生成します。
func NewDepartmentRepository(pool pgdb.Queryer) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// List は全部署を部署番号順で取得します。
func (r *DepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT dept_no, dept_name
          FROM departments
         ORDER BY dept_no
    `)
	if err != nil {
		return nil, fmt.Errorf("postgres: list departments: %w", err)
	}
	defer rows.Close()

	var departments []*department.Department
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.DeptNo, &d.DeptName); err != nil {
			return nil, fmt.Errorf("postgres: scan department: %w", err)
		}
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

// Exists は部署番号の存在を確認します。
func (r *DepartmentRepository) Exists(ctx context.Context, deptNo string) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM departments WHERE dept_no = $1)
    `, deptNo).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: department exists: %w", err)
	}
	return exists, nil
}
