package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const modalFixture = `<!DOCTYPE html>
<html><body>
<form id="downForm" action="/downSrcCode" method="post">
  <input type="hidden" name="_csrf" value="csrf-abc123"/>
  <input type="checkbox" id="selectAll"/>
  <input type="checkbox" id="ATTACH-42"/>
  <input type="hidden" id="token" value="tok-xyz789"/>
</form>
</body></html>`

func TestParseModalTokens(t *testing.T) {
	tokens, err := parseModalTokens(strings.NewReader(modalFixture))
	if err != nil {
		t.Fatalf("parseModalTokens: %v", err)
	}
	if tokens.attachIDs != "ATTACH-42" {
		t.Fatalf("expected second checkbox id, got %q", tokens.attachIDs)
	}
	if tokens.csrfToken != "csrf-abc123" {
		t.Fatalf("unexpected csrf token: %q", tokens.csrfToken)
	}
	if string(tokens.downloadToken) != "tok-xyz789" {
		t.Fatalf("unexpected download token: %q", tokens.downloadToken)
	}
}

func TestParseModalTokensShapeErrors(t *testing.T) {
	cases := []struct {
		name string
		page string
		want string
	}{
		{
			name: "single checkbox",
			page: `<form><input type="checkbox" id="only"/><input name="_csrf" value="c"/><input id="token" value="t"/></form>`,
			want: "checkboxes",
		},
		{
			name: "missing csrf",
			page: `<form><input type="checkbox" id="a"/><input type="checkbox" id="b"/><input id="token" value="t"/></form>`,
			want: "_csrf",
		},
		{
			name: "missing token",
			page: `<form><input type="checkbox" id="a"/><input type="checkbox" id="b"/><input name="_csrf" value="c"/></form>`,
			want: "token",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseModalTokens(strings.NewReader(tc.page))
			if err == nil {
				t.Fatal("expected shape error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthorizeMergesCandidateAndTokens(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		_, _ = w.Write([]byte(modalFixture))
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	candidate := ReleaseCandidate{
		UploadID:        "UP0001",
		DownloadPurpose: DownloadPurpose,
		SourceVersion:   "X910XXU1AWH1",
		SourceModel:     "SM-X910",
	}
	auth, err := client.Authorize(context.Background(), candidate)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}

	// The merge keeps the original four fields unchanged and adds exactly
	// the three resolved values.
	if auth.ReleaseCandidate != candidate {
		t.Fatalf("candidate fields altered: %+v", auth.ReleaseCandidate)
	}
	if auth.AttachIDs != "ATTACH-42" || auth.CSRFToken != "csrf-abc123" || string(auth.DownloadToken) != "tok-xyz789" {
		t.Fatalf("unexpected resolved tokens: %+v", auth)
	}

	if captured.URL.Path != "/downSrcMPop" {
		t.Fatalf("unexpected modal path: %q", captured.URL.Path)
	}
	if got := captured.URL.Query().Get("uploadId"); got != "UP0001" {
		t.Fatalf("unexpected uploadId query: %q", got)
	}
}

func TestAuthorizeRequiresUploadID(t *testing.T) {
	client, err := New(Config{BaseURL: "https://example.test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Authorize(context.Background(), ReleaseCandidate{}); err == nil {
		t.Fatal("expected error for empty upload id")
	}
}
