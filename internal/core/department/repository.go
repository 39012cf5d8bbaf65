package department

import "context"

// Repository は部署永続化の抽象です。
type Repository interface {
	List(ctx context.Context) ([]*Department, error)
	Exists(ctx context.Context, deptNo string) (bool, error)
}
