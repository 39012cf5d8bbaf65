package employee

import "time"

// OpenEndedDate は「現在も有効」を意味する番兵日付です。
var OpenEndedDate = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

// ManagerTitle はマネージャ履歴の開閉を引き起こす役職名です。比較は大文字小文字を区別します。
const ManagerTitle = "Manager"

// SegmentCategory は履歴セグメントの種別を表します。
type SegmentCategory string

const (
	CategorySalary     SegmentCategory = "salary"
	CategoryTitle      SegmentCategory = "title"
	CategoryDepartment SegmentCategory = "department"
	CategoryManager    SegmentCategory = "manager"
)

// SegmentBounds は履歴セグメントの有効期間です。日付は UTC の 0 時に正規化されます。
type SegmentBounds struct {
	FromDate time.Time
	ToDate   time.Time
}

// Open はセグメントが現在も有効かどうかを返します。
func (b SegmentBounds) Open() bool {
	return b.ToDate.Equal(OpenEndedDate)
}

// Bounds は期間そのものを返します。ジェネリックなセグメント走査で利用します。
func (b SegmentBounds) Bounds() SegmentBounds {
	return b
}

// SalarySegment は給与履歴の 1 区間です。
type SalarySegment struct {
	SegmentBounds
	Amount int
}

// TitleSegment は役職履歴の 1 区間です。
type TitleSegment struct {
	SegmentBounds
	Title string
}

// DeptSegment は部署配属履歴の 1 区間です。DeptNo は常に小文字で保持します。
type DeptSegment struct {
	SegmentBounds
	DeptNo string
}

// ManagerSegment はマネージャ配属履歴の 1 区間です。役職が Manager の期間にのみ存在します。
type ManagerSegment struct {
	SegmentBounds
	DeptNo string
}

// SegmentKey は (社員番号, 種別, 開始日) でセグメントを一意に指す複合キーです。
type SegmentKey struct {
	EmpNo    int
	Category SegmentCategory
	FromDate time.Time
}

// Employee は社員レコードと各履歴の集約です。
// 各履歴スライスはリポジトリが (ToDate, FromDate) 昇順で返すため、
// 末尾から走査すれば現行セグメントに最初に到達します。
type Employee struct {
	EmpNo     int
	BirthDate time.Time
	FirstName string
	LastName  string
	Gender    string
	HireDate  time.Time

	Salaries    []SalarySegment
	Titles      []TitleSegment
	Departments []DeptSegment
	Managers    []ManagerSegment
}

// EmployeeSummary は部署別一覧で返す社員の要約です。
type EmployeeSummary struct {
	EmpNo     int
	HireDate  time.Time
	FirstName string
	LastName  string
}

type boundedSegment interface {
	Bounds() SegmentBounds
}

// currentSegment は現行 (開いている) セグメントを返します。存在しない場合は false を返します。
func currentSegment[S boundedSegment](segments []S) (S, bool) {
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i].Bounds().Open() {
			return segments[i], true
		}
	}
	var zero S
	return zero, false
}

// earliestSegment は開始日が最も古いセグメントを返します。
func earliestSegment[S boundedSegment](segments []S) (S, bool) {
	var (
		found S
		ok    bool
	)
	for _, seg := range segments {
		if !ok || seg.Bounds().FromDate.Before(found.Bounds().FromDate) {
			found = seg
			ok = true
		}
	}
	return found, ok
}

// hasSegmentFrom は指定日に開始するセグメントの有無を返します。
func hasSegmentFrom[S boundedSegment](segments []S, date time.Time) bool {
	for _, seg := range segments {
		if seg.Bounds().FromDate.Equal(date) {
			return true
		}
	}
	return false
}
