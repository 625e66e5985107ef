package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const searchFixture = `<!DOCTYPE html>
<html><body>
<table class="tbl-downList">
  <tr class="head">
    <th>No</th><th>Model</th><th>Version</th><th>Type</th><th>Date</th><th>Download</th>
  </tr>
  <tr>
    <td>1</td>
    <td> SM-X910 </td>
    <td>X910XXU1AWH1</td>
    <td>Phone</td>
    <td>2023-08-01</td>
    <td><a href="javascript:downSrc('UP0001','normal');">zip</a></td>
  </tr>
  <tr>
    <td>2</td>
    <td>SM-X910</td>
    <td>X910XXU2BXA3</td>
    <td>Phone</td>
    <td>2024-01-15</td>
    <td><a href="javascript:downSrc('UP0002','normal');">zip</a></td>
  </tr>
</table>
</body></html>`

func TestParseSearchResults(t *testing.T) {
	candidates, err := parseSearchResults(strings.NewReader(searchFixture))
	if err != nil {
		t.Fatalf("parseSearchResults: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	first := candidates[0]
	if first.UploadID != "UP0001" {
		t.Fatalf("unexpected upload id: %q", first.UploadID)
	}
	if first.SourceModel != "SM-X910" {
		t.Fatalf("expected trimmed model, got %q", first.SourceModel)
	}
	if first.SourceVersion != "X910XXU1AWH1" {
		t.Fatalf("unexpected version: %q", first.SourceVersion)
	}
	if first.DownloadPurpose != DownloadPurpose {
		t.Fatalf("unexpected purpose: %q", first.DownloadPurpose)
	}

	if candidates[1].UploadID != "UP0002" {
		t.Fatalf("expected page order preserved, got %q second", candidates[1].UploadID)
	}
	for i, candidate := range candidates {
		if candidate.SourceVersion == "" {
			t.Fatalf("candidate %d has empty version", i)
		}
	}
}

func TestParseSearchResultsMissingTable(t *testing.T) {
	_, err := parseSearchResults(strings.NewReader(`<html><body><p>no results</p></body></html>`))
	if err == nil {
		t.Fatal("expected error for missing table")
	}
	if !strings.Contains(err.Error(), "tbl-downList") {
		t.Fatalf("expected table name in error, got %v", err)
	}
}

func TestParseSearchResultsRowShapeErrors(t *testing.T) {
	cases := []struct {
		name string
		row  string
		want string
	}{
		{
			name: "too few columns",
			row:  `<tr><td>1</td><td>SM-A</td><td>VER1</td></tr>`,
			want: "columns",
		},
		{
			name: "missing anchor",
			row:  `<tr><td>1</td><td>SM-A</td><td>VER1</td><td></td><td></td><td>zip</td></tr>`,
			want: "anchor",
		},
		{
			name: "unquoted href",
			row:  `<tr><td>1</td><td>SM-A</td><td>VER1</td><td></td><td></td><td><a href="/plain">zip</a></td></tr>`,
			want: "upload id",
		},
		{
			name: "empty version",
			row:  `<tr><td>1</td><td>SM-A</td><td> </td><td></td><td></td><td><a href="javascript:downSrc('U1');">zip</a></td></tr>`,
			want: "version",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := `<table class="tbl-downList">` + tc.row + `</table>`
			_, err := parseSearchResults(strings.NewReader(page))
			if err == nil {
				t.Fatal("expected shape error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSearchEscapesQueryAndParsesResponse(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL, UserAgent: "osrcdl/test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	candidates, err := client.Search(context.Background(), "SM-X910 5G")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	if captured == nil {
		t.Fatal("expected request to be captured")
	}
	if captured.URL.Path != "/uploadSearch" {
		t.Fatalf("unexpected path: %q", captured.URL.Path)
	}
	if got := captured.URL.Query().Get("searchValue"); got != "SM-X910 5G" {
		t.Fatalf("expected escaped search value to round-trip, got %q", got)
	}
	if got := captured.Header.Get("User-Agent"); got != "osrcdl/test" {
		t.Fatalf("unexpected user agent: %q", got)
	}
}

func TestSearchRejectsEmptyModel(t *testing.T) {
	client, err := New(Config{BaseURL: "https://example.test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Search(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestFindByVersionRequiresExactMatch(t *testing.T) {
	candidates := []ReleaseCandidate{
		{UploadID: "U1", SourceVersion: "VER1"},
		{UploadID: "U2", SourceVersion: "VER2"},
		{UploadID: "U3", SourceVersion: "VER2"},
	}

	match, ok := FindByVersion(candidates, "VER2")
	if !ok || match.UploadID != "U2" {
		t.Fatalf("expected first VER2 candidate, got %+v ok=%v", match, ok)
	}

	if _, ok := FindByVersion(candidates, "ver2"); ok {
		t.Fatal("match must be case sensitive")
	}
	if _, ok := FindByVersion(candidates, "VER9"); ok {
		t.Fatal("expected no match")
	}
}
