package department

// Department は部署エンティティです。DeptNo は "d005" のような小文字の識別子です。
type Department struct {
	DeptNo   string
	DeptName string
}
