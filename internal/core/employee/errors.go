package employee

import "errors"

var (
	// ErrMalformedRequest は必須項目が欠けている場合に返却されます。
	ErrMalformedRequest = errors.New("empNo, newSalary, newTitle and newDeptNo are all required")
	// ErrInvalidSalary は給与が正の値でない場合に返却されます。
	ErrInvalidSalary = errors.New("salary must be positive")
	// ErrInvalidTitleLength は役職名の長さが 1〜50 文字の範囲外の場合に返却されます。
	ErrInvalidTitleLength = errors.New("title must be between 1 and 50 characters")
	// ErrMalformedDate は日付が YYYY-MM-DD として解釈できない場合に返却されます。
	ErrMalformedDate = errors.New("date must be in YYYY-MM-DD format")
	// ErrEmployeeNotFound は社員が存在しない場合に返却されます。
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrDepartmentNotFound は対象部署が存在しない場合に返却されます。
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrEmployeeNotCurrent は退職済み社員への昇進要求で返却されます。
	ErrEmployeeNotCurrent = errors.New("employee is no longer with the company")
	// ErrNoChangeRequested は給与・役職・部署のいずれも現状と変わらない場合に返却されます。
	ErrNoChangeRequested = errors.New("provided data matches existing data, no changes requested")
	// ErrPromotionBeforeHire は発効日が最初の給与開始日より前の場合に返却されます。
	ErrPromotionBeforeHire = errors.New("promotion date cannot be earlier than the employee's start date")
	// ErrDuplicatePromotionDate は同一日に 2 度目の昇進を試みた場合に返却されます。
	ErrDuplicatePromotionDate = errors.New("employee has already been promoted on this date")
	// ErrDepartmentReentry は過去に所属した部署への再配属で返却されます。
	ErrDepartmentReentry = errors.New("employee cannot return to a previous department")
	// ErrInvalidPage は 1 未満のページ番号が指定された場合に返却されます。
	ErrInvalidPage = errors.New("page number must be greater than or equal to 1")
)
