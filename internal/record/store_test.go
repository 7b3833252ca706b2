package record_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kamusis/tagsheet/internal/record"
)

func rows(kv ...map[string]string) []map[string]string { return kv }

func TestImportBatch_AssignsContiguousThenAppendedIndices(t *testing.T) {
	s := record.NewStore("Amount")

	r1 := s.ImportBatch(rows(
		map[string]string{"Date": "2024-01-01", "Amount": "10"},
		map[string]string{"Date": "2024-01-02", "Amount": "20"},
	), []string{"Date", "Amount"})
	r2 := s.ImportBatch(rows(
		map[string]string{"Date": "2024-01-03", "Amount": "30"},
	), []string{"Date", "Amount"})

	var got []int
	for _, r := range append(r1.Records, r2.Records...) {
		got = append(got, r.Index)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Fatalf("indices (-want +got):\n%s", diff)
	}
	if !r1.Established || r2.Established {
		t.Errorf("only the first batch should establish headers: %v %v", r1.Established, r2.Established)
	}

	seen := map[int]bool{}
	for _, r := range s.Records() {
		if seen[r.Index] {
			t.Fatalf("duplicate index %d", r.Index)
		}
		seen[r.Index] = true
		if got, ok := s.Lookup(r.Index); !ok || got.Index != r.Index {
			t.Errorf("Lookup(%d) = %+v, %v", r.Index, got, ok)
		}
	}
}

func TestImportBatch_NormalizesAmount(t *testing.T) {
	s := record.NewStore("Amount")
	res := s.ImportBatch(rows(
		map[string]string{"amount": "$1,234.56"},
		map[string]string{"amount": "-42"},
		map[string]string{"amount": "n/a"},
		map[string]string{"amount": ""},
	), []string{"amount"})

	var got []string
	for _, r := range res.Records {
		v, _ := r.Get("Amount")
		got = append(got, v)
	}
	want := []string{"1234.56", "42", "n/a", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("amounts (-want +got):\n%s", diff)
	}
}

func TestImportBatch_DoesNotAliasCallerRows(t *testing.T) {
	s := record.NewStore("Amount")
	in := map[string]string{"Amount": "-5"}
	s.ImportBatch(rows(in), []string{"Amount"})
	if in["Amount"] != "-5" {
		t.Fatalf("caller row mutated: %q", in["Amount"])
	}
}

func TestImportBatch_HeaderMismatch(t *testing.T) {
	s := record.NewStore("Amount")
	s.ImportBatch(rows(map[string]string{"Date": "d", "Amount": "1"}), []string{"Date", "Amount"})

	same := s.ImportBatch(rows(map[string]string{"date": "d", "amount": "2"}), []string{"date", "amount"})
	if same.HeaderMismatch {
		t.Error("case-only difference must not be a mismatch")
	}

	diff := s.ImportBatch(rows(map[string]string{"Date": "d", "Amount": "3", "Category": "c"}), []string{"Date", "Amount", "Category"})
	if !diff.HeaderMismatch {
		t.Error("extra column must be reported as a mismatch")
	}
	if len(diff.Records) != 1 || s.Len() != 3 {
		t.Errorf("mismatched batch must still merge: records=%d len=%d", len(diff.Records), s.Len())
	}
	if got := s.Headers(); !cmp.Equal(got, []string{"Date", "Amount"}) {
		t.Errorf("header set must not change, got %v", got)
	}
}

func TestImportBatch_EmptyBatchIsNoData(t *testing.T) {
	s := record.NewStore("Amount")
	res := s.ImportBatch(nil, []string{"Date"})
	if !res.NoData {
		t.Fatal("expected NoData")
	}
	if s.Headers() != nil {
		t.Errorf("empty batch must not establish headers, got %v", s.Headers())
	}

	s.ImportBatch(rows(map[string]string{"X": "1"}), []string{"X"})
	if got := s.Headers(); !cmp.Equal(got, []string{"X"}) {
		t.Errorf("first non-empty batch should establish headers, got %v", got)
	}
}

func TestRecordGet_CaseInsensitive(t *testing.T) {
	r := record.Record{
		Columns: []string{"Description"},
		Fields:  map[string]string{"Description": "Coffee"},
	}
	if v, ok := r.Get("DESCRIPTION"); !ok || v != "Coffee" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatal("missing column reported present")
	}
}
