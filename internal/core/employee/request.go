package employee

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	dateLayout     = "2006-01-02"
	maxTitleLength = 50
)

// PromotionRequest は昇進要求の入力値です。永続化はされません。
// PromotionDate のみ省略可能で、省略時はトランザクション実行日の日付が使われます。
type PromotionRequest struct {
	EmpNo         *int
	NewTitle      *string
	NewSalary     *int
	NewDeptNo     *string
	PromotionDate *time.Time
}

// ValidatePromotionRequest は昇進要求の構造的な妥当性を検査します。
// ストアへのアクセスは行わない純粋な関数です。
func ValidatePromotionRequest(req PromotionRequest) error {
	if req.EmpNo == nil || req.NewTitle == nil || req.NewDeptNo == nil || req.NewSalary == nil {
		return ErrMalformedRequest
	}
	if *req.NewSalary < 1 {
		return ErrInvalidSalary
	}
	title := strings.TrimSpace(*req.NewTitle)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return ErrInvalidTitleLength
	}
	return nil
}

// ParseDate は YYYY-MM-DD 形式の文字列を UTC の日付に変換します。
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", value, ErrMalformedDate)
	}
	return t, nil
}

// ToTitleCase は空白区切りの各単語の先頭を大文字化し、前後の空白を除去します。
func ToTitleCase(input string) string {
	words := strings.Fields(input)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// NormalizeDeptNo は部署番号を小文字へ正規化します。再配属判定はこの表記で行われます。
func NormalizeDeptNo(deptNo string) string {
	return strings.ToLower(strings.TrimSpace(deptNo))
}
