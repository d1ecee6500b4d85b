package rest

import (
	"testing"
	"time"

	"github.com/newshub/news-service/internal/news/application"
	"github.com/newshub/news-service/internal/news/ports"
)

func TestBuildHistoryPage(t *testing.T) {
	entries := []application.HistoryEntry{
		{Seq: 1, CreatedAt: time.Now(), Message: "The news has been created: {}"},
		{Seq: 2, CreatedAt: time.Now(), Message: "The news has been changed: {}"},
	}

	tests := []struct {
		name            string
		total           int
		filter          ports.ListFilter
		expectedPerPage int
		expectedPage    int
		expectedPages   int
	}{
		{
			name:            "first page with explicit limit",
			total:           5,
			filter:          ports.ListFilter{Limit: 2, Offset: 0},
			expectedPerPage: 2,
			expectedPage:    1,
			expectedPages:   3,
		},
		{
			name:            "second page",
			total:           5,
			filter:          ports.ListFilter{Limit: 2, Offset: 2},
			expectedPerPage: 2,
			expectedPage:    2,
			expectedPages:   3,
		},
		{
			name:            "zero limit falls back to the default page size",
			total:           2,
			filter:          ports.ListFilter{},
			expectedPerPage: 20,
			expectedPage:    1,
			expectedPages:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := buildHistoryPage(entries, tt.total, tt.filter)

			if len(page.Data) != len(entries) {
				t.Fatalf("expected %d entries, got %d", len(entries), len(page.Data))
			}
			if page.Data[0].Message != entries[0].Message {
				t.Errorf("expected message %q, got %q", entries[0].Message, page.Data[0].Message)
			}

			if page.Meta.TotalItems != tt.total {
				t.Errorf("expected totalItems %d, got %d", tt.total, page.Meta.TotalItems)
			}
			if page.Meta.ItemsPerPage != tt.expectedPerPage {
				t.Errorf("expected itemsPerPage %d, got %d", tt.expectedPerPage, page.Meta.ItemsPerPage)
			}
			if page.Meta.CurrentPage != tt.expectedPage {
				t.Errorf("expected currentPage %d, got %d", tt.expectedPage, page.Meta.CurrentPage)
			}
			if page.Meta.TotalPages != tt.expectedPages {
				t.Errorf("expected totalPages %d, got %d", tt.expectedPages, page.Meta.TotalPages)
			}
		})
	}
}
