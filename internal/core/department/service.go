package department

import (
	"context"
	"strings"
)

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

// Service は部署に関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は部署ユースケースの公開インターフェースです。
type UseCase interface {
	ListDepartments(ctx context.Context) ([]*Department, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// ListDepartments は全部署を部署番号順で返します。
func (s *Service) ListDepartments(ctx context.Context) ([]*Department, error) {
	var result []*Department
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		departments, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		result = departments
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// Exists は部署番号の存在を確認します。照合は小文字へ正規化した表記で行います。
func (s *Service) Exists(ctx context.Context, deptNo string) (bool, error) {
	return s.repo.Exists(ctx, strings.ToLower(strings.TrimSpace(deptNo)))
}
