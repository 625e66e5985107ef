package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

const searchPage = `<!DOCTYPE html>
<html><body>
<table class="tbl-downList">
  <tr class="head"><th>No</th><th>Model</th><th>Version</th><th>Type</th><th>Date</th><th>Download</th></tr>
  <tr>
    <td>1</td><td>SM-X910</td><td>X910XXU1AWH1</td><td>Phone</td><td>2023-08-01</td>
    <td><a href="javascript:downSrc('UP0001','n');">zip</a></td>
  </tr>
  <tr>
    <td>2</td><td>SM-X910</td><td>X910XXU2BXA3</td><td>Phone</td><td>2024-01-15</td>
    <td><a href="javascript:downSrc('UP0002','n');">zip</a></td>
  </tr>
</table>
</body></html>`

const modalPage = `<!DOCTYPE html>
<html><body>
<form>
  <input type="hidden" name="_csrf" value="csrf-1"/>
  <input type="checkbox" id="all"/>
  <input type="checkbox" id="ATTACH-7"/>
  <input type="hidden" id="token" value="tok-1"/>
</form>
</body></html>`

// fakePortal serves the three portal endpoints and counts hits per stage.
type fakePortal struct {
	server    *httptest.Server
	modalHits atomic.Int64
	payload   []byte
}

func newFakePortal(t *testing.T) *fakePortal {
	t.Helper()
	fp := &fakePortal{payload: bytes.Repeat([]byte{0x5A}, 64*1024)}
	fp.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/uploadSearch":
			_, _ = w.Write([]byte(searchPage))
		case "/downSrcMPop":
			fp.modalHits.Add(1)
			_, _ = w.Write([]byte(modalPage))
		case "/downSrcCode":
			w.Header().Set("Content-Disposition", `attachment; filename="SM-X910_Opensource.zip"`)
			_, _ = w.Write(fp.payload)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fp.server.Close)
	return fp
}

// writeTestConfig points the CLI at the fake portal and a temp download dir.
func writeTestConfig(t *testing.T, baseURL string) (configPath, downloadDir string) {
	t.Helper()
	dir := t.TempDir()
	downloadDir = filepath.Join(dir, "out")
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		t.Fatalf("create download dir: %v", err)
	}
	configPath = filepath.Join(dir, "config.toml")
	content := `
[portal]
base_url = "` + baseURL + `"
insecure_tls = false

[download]
dir = "` + downloadDir + `"
chunk_size_kib = 16

[logging]
level = "error"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, downloadDir
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCommand()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}
