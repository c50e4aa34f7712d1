package query

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

type record struct {
	name     string
	supplier string
	status   string
	risk     int
}

var records = []record{
	{name: "Widget Coating", supplier: "Apex", status: "verified", risk: 90},
	{name: "apex sealant", supplier: "Northwind", status: "pending-review", risk: 40},
	{name: "Barrier Film", supplier: "Helix", status: "evidence-gap", risk: 75},
	{name: "Éclair Wrap", supplier: "Summit", status: "verified", risk: 20},
	{name: "Carton Liner", supplier: "Apex", status: "pending-review", risk: 55},
	{name: "Zinc Primer", supplier: "Coastal", status: "verified", risk: 75},
}

func floatPtr(v float64) *float64 { return &v }

func byName(r record) string     { return r.name }
func bySupplier(r record) string { return r.supplier }
func byStatus(r record) string   { return r.status }
func byRisk(r record) float64    { return float64(r.risk) }

func TestFilterCountMatchesPredicates(t *testing.T) {
	statuses := []string{"", "all", "verified", "pending-review", "evidence-gap"}
	terms := []string{"", "apex", "APEX", "film", "nothing"}
	ranges := []Range{
		{},
		{Min: floatPtr(50)},
		{Max: floatPtr(60)},
		{Min: floatPtr(40), Max: floatPtr(75)},
	}

	for _, status := range statuses {
		for _, term := range terms {
			for _, rg := range ranges {
				name := fmt.Sprintf("status=%q/term=%q/range=%v", status, term, rg.Active())
				t.Run(name, func(t *testing.T) {
					got := Filter(records,
						Contains(term, byName, bySupplier),
						Equals(status, byStatus),
						InRange(rg, byRisk),
					)

					want := 0
					for _, r := range records {
						if matches(r, status, term, rg) {
							want++
						}
					}
					if len(got) != want {
						t.Fatalf("Filter() len = %d, want %d", len(got), want)
					}
				})
			}
		}
	}
}

func matches(r record, status, term string, rg Range) bool {
	if status != "" && status != "all" && r.status != status {
		return false
	}
	if term != "" {
		lt := strings.ToLower(term)
		if !strings.Contains(strings.ToLower(r.name), lt) && !strings.Contains(strings.ToLower(r.supplier), lt) {
			return false
		}
	}
	if rg.Min != nil && float64(r.risk) < *rg.Min {
		return false
	}
	if rg.Max != nil && float64(r.risk) > *rg.Max {
		return false
	}
	return true
}

func TestSortTextIsLocaleAware(t *testing.T) {
	items := slices.Clone(records)
	Sort(items, TextKey(byName), Asc)

	got := make([]string, len(items))
	for i, r := range items {
		got[i] = r.name
	}
	want := []string{"apex sealant", "Barrier Film", "Carton Liner", "Éclair Wrap", "Widget Coating", "Zinc Primer"}
	if !slices.Equal(got, want) {
		t.Fatalf("Sort() = %v, want %v", got, want)
	}
}

func TestSortNumberDescending(t *testing.T) {
	items := slices.Clone(records)
	Sort(items, NumberKey(byRisk), Desc)

	for i := 1; i < len(items); i++ {
		if items[i-1].risk < items[i].risk {
			t.Fatalf("not descending at %d: %d < %d", i, items[i-1].risk, items[i].risk)
		}
	}
	// equal risk keeps input order
	if items[1].name != "Barrier Film" || items[2].name != "Zinc Primer" {
		t.Fatalf("ties not stable: %q, %q", items[1].name, items[2].name)
	}
}

func TestSortIsIdempotent(t *testing.T) {
	for _, dir := range []Direction{Asc, Desc} {
		once := slices.Clone(records)
		Sort(once, NumberKey(byRisk), dir)
		twice := slices.Clone(once)
		Sort(twice, NumberKey(byRisk), dir)
		if !slices.Equal(once, twice) {
			t.Fatalf("%s: re-sorting changed order", dir)
		}
	}
}

func TestPaginateClampsAndNeverEmptyWhenDataExists(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	cases := []struct {
		page, size     int
		wantPage       int
		wantLen        int
		wantTotalPages int
	}{
		{page: 1, size: 10, wantPage: 1, wantLen: 10, wantTotalPages: 3},
		{page: 3, size: 10, wantPage: 3, wantLen: 3, wantTotalPages: 3},
		{page: 4, size: 10, wantPage: 3, wantLen: 3, wantTotalPages: 3},
		{page: 99, size: 5, wantPage: 5, wantLen: 3, wantTotalPages: 5},
		{page: 0, size: 10, wantPage: 1, wantLen: 10, wantTotalPages: 3},
		{page: -2, size: 0, wantPage: 1, wantLen: DefaultPageSize, wantTotalPages: 3},
		{page: 1, size: 1000, wantPage: 1, wantLen: 23, wantTotalPages: 1},
	}
	for _, tc := range cases {
		got := Paginate(items, tc.page, tc.size)
		if got.Page != tc.wantPage || len(got.Items) != tc.wantLen || got.TotalPages != tc.wantTotalPages {
			t.Errorf("Paginate(page=%d,size=%d) = page %d len %d pages %d, want %d/%d/%d",
				tc.page, tc.size, got.Page, len(got.Items), got.TotalPages, tc.wantPage, tc.wantLen, tc.wantTotalPages)
		}
		if got.Empty {
			t.Errorf("Paginate(page=%d) reported empty for non-empty input", tc.page)
		}
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	got := Paginate([]int{}, 5, 10)
	if !got.Empty || got.Page != 1 || got.TotalPages != 1 || len(got.Items) != 0 {
		t.Fatalf("Paginate(empty) = %+v", got)
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	input := slices.Clone(records)
	key := NumberKey(byRisk)
	page := Run(input, []Predicate[record]{Equals("verified", byStatus)}, &key, Desc, 1, 2)

	if !slices.Equal(input, records) {
		t.Fatal("Run() mutated its input")
	}
	if page.Total != 3 || page.TotalPages != 2 || len(page.Items) != 2 {
		t.Fatalf("Run() = %+v", page)
	}
	if page.Items[0].risk != 90 || page.Items[1].risk != 75 {
		t.Fatalf("Run() items = %+v", page.Items)
	}
}

func TestParseDirection(t *testing.T) {
	if ParseDirection("DESC") != Desc || ParseDirection("") != Asc || ParseDirection("bogus") != Asc {
		t.Fatal("ParseDirection() mismatch")
	}
}
