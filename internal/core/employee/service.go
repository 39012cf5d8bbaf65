package employee

import (
	"context"
	"strings"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// departmentPageSize は部署別一覧の 1 ページあたりの件数です。
const departmentPageSize = 20

// Service は社員履歴に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	depts DepartmentDirectory
	clock Clock
	tx    TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	Promote(ctx context.Context, req PromotionRequest) error
	GetEmployee(ctx context.Context, empNo int) (*Employee, error)
	ListByDepartment(ctx context.Context, deptNo string, page int) ([]*EmployeeSummary, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, depts DepartmentDirectory, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, depts: depts, clock: clock, tx: tx}
}

// promotionPlan は業務検証の結果 (発効日と変更フラグ) です。
type promotionPlan struct {
	effectiveDate time.Time
	salaryChanged bool
	deptChanged   bool
	titleChanged  bool
}

// Promote は昇進要求を単一のトランザクションとして処理します。
// 変更対象カテゴリごとに現行セグメントを閉じ、発効日から始まる新しいセグメントを開きます。
// いずれかの検証に失敗した場合は一切書き込まずに中断します。
func (s *Service) Promote(ctx context.Context, req PromotionRequest) error {
	if err := ValidatePromotionRequest(req); err != nil {
		return err
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		emp, err := s.repo.FindByNumberForUpdate(txCtx, *req.EmpNo)
		if err != nil {
			return err
		}

		plan, err := s.planPromotion(txCtx, emp, req)
		if err != nil {
			return err
		}

		return s.applyPromotion(txCtx, emp, req, plan)
	})
}

// planPromotion は昇進の業務ルールを現在の状態に対して検証し、
// 発効日と変更フラグを決定します。最初の違反で即座に失敗します。
func (s *Service) planPromotion(ctx context.Context, emp *Employee, req PromotionRequest) (promotionPlan, error) {
	var plan promotionPlan

	if req.PromotionDate != nil {
		plan.effectiveDate = toDateOnly(*req.PromotionDate)
	} else {
		plan.effectiveDate = toDateOnly(s.clock.Now())
	}

	if first, ok := earliestSegment(emp.Salaries); ok && plan.effectiveDate.Before(first.FromDate) {
		return plan, ErrPromotionBeforeHire
	}

	curSalary, ok := currentSegment(emp.Salaries)
	if !ok {
		return plan, ErrEmployeeNotCurrent
	}
	curTitle, ok := currentSegment(emp.Titles)
	if !ok {
		return plan, ErrEmployeeNotCurrent
	}
	curDept, ok := currentSegment(emp.Departments)
	if !ok {
		return plan, ErrEmployeeNotCurrent
	}

	plan.salaryChanged = *req.NewSalary != curSalary.Amount
	plan.deptChanged = !strings.EqualFold(*req.NewDeptNo, curDept.DeptNo)
	plan.titleChanged = !strings.EqualFold(*req.NewTitle, curTitle.Title)

	if !plan.salaryChanged && !plan.deptChanged && !plan.titleChanged {
		return plan, ErrNoChangeRequested
	}

	if plan.deptChanged {
		exists, err := s.depts.Exists(ctx, NormalizeDeptNo(*req.NewDeptNo))
		if err != nil {
			return plan, err
		}
		if !exists {
			return plan, ErrDepartmentNotFound
		}
	}

	if hasSegmentFrom(emp.Salaries, plan.effectiveDate) ||
		hasSegmentFrom(emp.Titles, plan.effectiveDate) ||
		hasSegmentFrom(emp.Departments, plan.effectiveDate) {
		return plan, ErrDuplicatePromotionDate
	}

	if plan.deptChanged {
		for _, seg := range emp.Departments {
			if strings.EqualFold(seg.DeptNo, *req.NewDeptNo) {
				return plan, ErrDepartmentReentry
			}
		}
	}

	return plan, nil
}

// applyPromotion は変更フラグの立ったカテゴリごとに、現行セグメントを発効日で閉じ、
// 発効日から始まる新しいセグメントを挿入します。変更のないカテゴリには触れません。
func (s *Service) applyPromotion(ctx context.Context, emp *Employee, req PromotionRequest, plan promotionPlan) error {
	date := plan.effectiveDate

	if plan.salaryChanged {
		cur, _ := currentSegment(emp.Salaries)
		if err := s.repo.CloseSegment(ctx, SegmentKey{EmpNo: emp.EmpNo, Category: CategorySalary, FromDate: cur.FromDate}, date); err != nil {
			return err
		}
		next := SalarySegment{SegmentBounds: SegmentBounds{FromDate: date, ToDate: OpenEndedDate}, Amount: *req.NewSalary}
		if err := s.repo.InsertSalary(ctx, emp.EmpNo, next); err != nil {
			return err
		}
	}

	if plan.deptChanged {
		cur, _ := currentSegment(emp.Departments)
		if err := s.repo.CloseSegment(ctx, SegmentKey{EmpNo: emp.EmpNo, Category: CategoryDepartment, FromDate: cur.FromDate}, date); err != nil {
			return err
		}
		next := DeptSegment{SegmentBounds: SegmentBounds{FromDate: date, ToDate: OpenEndedDate}, DeptNo: NormalizeDeptNo(*req.NewDeptNo)}
		if err := s.repo.InsertDepartment(ctx, emp.EmpNo, next); err != nil {
			return err
		}
	}

	if plan.titleChanged {
		newTitle := ToTitleCase(*req.NewTitle)
		curTitle, _ := currentSegment(emp.Titles)

		if err := s.repo.CloseSegment(ctx, SegmentKey{EmpNo: emp.EmpNo, Category: CategoryTitle, FromDate: curTitle.FromDate}, date); err != nil {
			return err
		}
		next := TitleSegment{SegmentBounds: SegmentBounds{FromDate: date, ToDate: OpenEndedDate}, Title: newTitle}
		if err := s.repo.InsertTitle(ctx, emp.EmpNo, next); err != nil {
			return err
		}

		// Manager 遷移の判定は正規化前の現行役職・正規化後の新役職に対し
		// リテラル "Manager" との完全一致で行います。
		if curTitle.Title == ManagerTitle && newTitle != ManagerTitle {
			if curManager, ok := currentSegment(emp.Managers); ok {
				if err := s.repo.CloseSegment(ctx, SegmentKey{EmpNo: emp.EmpNo, Category: CategoryManager, FromDate: curManager.FromDate}, date); err != nil {
					return err
				}
			}
		}

		if newTitle == ManagerTitle {
			seg := ManagerSegment{SegmentBounds: SegmentBounds{FromDate: date, ToDate: OpenEndedDate}, DeptNo: NormalizeDeptNo(*req.NewDeptNo)}
			if err := s.repo.InsertManager(ctx, emp.EmpNo, seg); err != nil {
				return err
			}
		}
	}

	return nil
}

// GetEmployee は社員の完全なレコード (履歴含む) を取得します。
func (s *Service) GetEmployee(ctx context.Context, empNo int) (*Employee, error) {
	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByNumber(txCtx, empNo)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByDepartment は指定部署の社員要約を 1 ページ (20 件) ずつ返します。
// page は 1 始まりです。ページが空であってもエラーにはなりません。
func (s *Service) ListByDepartment(ctx context.Context, deptNo string, page int) ([]*EmployeeSummary, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	normalized := NormalizeDeptNo(deptNo)

	var result []*EmployeeSummary
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		exists, err := s.depts.Exists(txCtx, normalized)
		if err != nil {
			return err
		}
		if !exists {
			return ErrDepartmentNotFound
		}

		summaries, err := s.repo.ListByDepartment(txCtx, normalized, departmentPageSize, (page-1)*departmentPageSize)
		if err != nil {
			return err
		}
		result = summaries
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func toDateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
