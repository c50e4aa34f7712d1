package app

import (
	"errors"
	"testing"

	"pfas-demo/internal/model"
	"pfas-demo/internal/query"
)

func TestDocumentSearchFiltersAndSorts(t *testing.T) {
	docs, _, data := seededStores(t)
	svc := NewDocumentService(docs)

	page, err := svc.Search(DocumentQuery{
		Status:    model.DocumentStatusVerified,
		SortBy:    "size_bytes",
		Direction: query.Desc,
		PageSize:  100,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := 0
	for _, d := range data.Documents {
		if d.Status == model.DocumentStatusVerified {
			want++
		}
	}
	if page.Total != want || len(page.Items) != want {
		t.Fatalf("Search() total = %d len = %d, want %d", page.Total, len(page.Items), want)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].SizeBytes < page.Items[i].SizeBytes {
			t.Fatalf("not sorted by size desc at %d", i)
		}
	}
}

func TestDocumentSearchTextMatchesNameOrSource(t *testing.T) {
	docs, _, _ := seededStores(t)
	svc := NewDocumentService(docs)

	page, err := svc.Search(DocumentQuery{Text: "SHAREPOINT"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Total == 0 {
		t.Fatal("expected source matches")
	}
	for _, d := range page.Items {
		if d.Source != "sharepoint" {
			t.Fatalf("unexpected match %+v", d)
		}
	}
}

func TestDocumentSearchEmptyAndClamped(t *testing.T) {
	docs, _, _ := seededStores(t)
	svc := NewDocumentService(docs)

	empty, err := svc.Search(DocumentQuery{Text: "no-such-document"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !empty.Empty || empty.Total != 0 {
		t.Fatalf("expected empty page, got %+v", empty)
	}

	clamped, err := svc.Search(DocumentQuery{Page: 50, PageSize: 5})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if clamped.Page != clamped.TotalPages || len(clamped.Items) == 0 {
		t.Fatalf("page not clamped: %+v", clamped)
	}
}

func TestDocumentSearchRejectsUnknownSortKey(t *testing.T) {
	docs, _, _ := seededStores(t)
	svc := NewDocumentService(docs)
	if _, err := svc.Search(DocumentQuery{SortBy: "colour"}); !errors.Is(err, ErrInvalidSortKey) {
		t.Fatalf("Search() error = %v, want ErrInvalidSortKey", err)
	}
}

func TestDocumentUpdateStatus(t *testing.T) {
	docs, _, _ := seededStores(t)
	svc := NewDocumentService(docs)

	doc, err := svc.UpdateStatus("doc-003", model.DocumentStatusVerified)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if doc.Status != model.DocumentStatusVerified {
		t.Fatalf("status = %q", doc.Status)
	}
	if _, err := svc.UpdateStatus("doc-003", "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("UpdateStatus() error = %v, want ErrInvalidStatus", err)
	}
	if _, err := svc.UpdateStatus("nope", model.DocumentStatusVerified); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("UpdateStatus() error = %v, want ErrDocumentNotFound", err)
	}
}
