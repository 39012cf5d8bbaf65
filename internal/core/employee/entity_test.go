package employee

import (
	"testing"
	"time"
)

func TestSegmentBounds_Open(t *testing.T) {
	t.Parallel()

	open := SegmentBounds{FromDate: date(2020, time.January, 1), ToDate: OpenEndedDate}
	if !open.Open() {
		t.Fatal("expected sentinel ToDate to be open")
	}

	closed := SegmentBounds{FromDate: date(2020, time.January, 1), ToDate: date(2023, time.June, 1)}
	if closed.Open() {
		t.Fatal("expected closed segment")
	}
}

func TestCurrentSegment(t *testing.T) {
	t.Parallel()

	segments := []SalarySegment{
		{SegmentBounds: bounds(date(2020, time.January, 1), date(2022, time.January, 1)), Amount: 50000},
		{SegmentBounds: bounds(date(2022, time.January, 1), OpenEndedDate), Amount: 60000},
	}

	cur, ok := currentSegment(segments)
	if !ok {
		t.Fatal("expected an open segment")
	}
	if cur.Amount != 60000 {
		t.Fatalf("expected current amount 60000, got %d", cur.Amount)
	}

	if _, ok := currentSegment([]ManagerSegment{}); ok {
		t.Fatal("expected no open segment for empty history")
	}
}

func TestEarliestSegment(t *testing.T) {
	t.Parallel()

	segments := []SalarySegment{
		{SegmentBounds: bounds(date(2022, time.January, 1), OpenEndedDate), Amount: 60000},
		{SegmentBounds: bounds(date(2020, time.January, 1), date(2022, time.January, 1)), Amount: 50000},
	}

	first, ok := earliestSegment(segments)
	if !ok {
		t.Fatal("expected a segment")
	}
	if !first.FromDate.Equal(date(2020, time.January, 1)) {
		t.Fatalf("unexpected earliest segment: %+v", first)
	}
}

func TestHasSegmentFrom(t *testing.T) {
	t.Parallel()

	segments := []TitleSegment{
		{SegmentBounds: bounds(date(2020, time.January, 1), OpenEndedDate), Title: "Engineer"},
	}

	if !hasSegmentFrom(segments, date(2020, time.January, 1)) {
		t.Fatal("expected match on from date")
	}
	if hasSegmentFrom(segments, date(2021, time.January, 1)) {
		t.Fatal("expected no match")
	}
}
