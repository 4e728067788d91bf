package diag_test

import (
	"testing"

	"aic/internal/diag"
	"aic/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	for i := range 3 {
		ok := bag.Add(diag.NewError(diag.SynUnexpectedToken, sp(uint32(i), uint32(i)+1), "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if bag.Len() != 2 || !bag.Full() {
		t.Fatalf("Len=%d Full=%v", bag.Len(), bag.Full())
	}

	unbounded := diag.NewBag(0)
	for range 100 {
		unbounded.Add(diag.NewError(diag.LexUnknownChar, sp(0, 1), "x"))
	}
	if unbounded.Len() != 100 {
		t.Fatalf("unbounded bag kept %d items", unbounded.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := diag.NewBag(0)
	r := diag.BagReporter{Bag: bag}
	diag.ReportError(r, diag.SynExpectSemicolon, sp(10, 11), "expected ';'").Emit()
	diag.NewReportBuilder(r, diag.SevWarning, diag.LexInfo, sp(2, 3), "note").Emit()
	diag.ReportError(r, diag.LexUnknownChar, sp(2, 3), "unknown character").Emit()
	diag.ReportError(r, diag.SynExpectSemicolon, sp(10, 11), "expected ';'").Emit()

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("after Dedup Len=%d, want 3", bag.Len())
	}
	bag.Sort()
	items := bag.Items()
	// на одном спане ошибка идёт раньше предупреждения
	if items[0].Code != diag.LexUnknownChar || items[1].Code != diag.LexInfo || items[2].Code != diag.SynExpectSemicolon {
		t.Fatalf("unexpected order: %v, %v, %v", items[0].Code, items[1].Code, items[2].Code)
	}
	if bag.ErrorCount() != 2 || !bag.HasErrors() {
		t.Fatalf("ErrorCount=%d", bag.ErrorCount())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := diag.NewBag(0)
	b := diag.ReportError(diag.BagReporter{Bag: bag}, diag.SemaDuplicateBinding, sp(5, 6), "duplicate binding `a`").
		WithNote(sp(0, 1), "previous declaration here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit must be idempotent, got %d diagnostics", bag.Len())
	}
	if got := bag.Items()[0].Notes; len(got) != 1 || got[0].Msg != "previous declaration here" {
		t.Fatalf("notes = %+v", got)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[diag.Code]string{
		diag.LexUnknownChar:      "LEX1001",
		diag.SynExpectSemicolon:  "SYN2004",
		diag.SemaUnboundName:     "SEM3002",
		diag.IOLoadFileError:     "IO4001",
		diag.BackendVerifyFailed: "BCK5001",
		diag.Code(9999):          "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if got := diag.SemaTypeMismatch.String(); got != "[SEM3003]: Type mismatch" {
		t.Errorf("String() = %q", got)
	}
}
