package employee

import (
	"context"
	"time"
)

// Repository は社員と履歴セグメント永続化の抽象です。
// 履歴スライスは (ToDate, FromDate) 昇順で返すことを前提とします。
type Repository interface {
	FindByNumber(ctx context.Context, empNo int) (*Employee, error)
	// FindByNumberForUpdate は社員行を排他ロックした上で取得します。
	// 同一社員への昇進トランザクションを直列化するために使用します。
	FindByNumberForUpdate(ctx context.Context, empNo int) (*Employee, error)
	ListByDepartment(ctx context.Context, deptNo string, limit, offset int) ([]*EmployeeSummary, error)

	InsertSalary(ctx context.Context, empNo int, seg SalarySegment) error
	InsertTitle(ctx context.Context, empNo int, seg TitleSegment) error
	InsertDepartment(ctx context.Context, empNo int, seg DeptSegment) error
	InsertManager(ctx context.Context, empNo int, seg ManagerSegment) error
	// CloseSegment は key が指すセグメントの ToDate を newToDate に書き換えます。
	CloseSegment(ctx context.Context, key SegmentKey, newToDate time.Time) error
}

// DepartmentDirectory は部署の存在確認に必要な最小限の抽象です。
type DepartmentDirectory interface {
	Exists(ctx context.Context, deptNo string) (bool, error)
}
