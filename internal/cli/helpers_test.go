package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"wikiqa/internal/config"
	"wikiqa/internal/testutil"
)

const archivePath = "/QA-data/data/Question_Answer_Dataset_v1.2.tar.gz"

// datasetServer serves a two-subject archive with three rows per subject.
func datasetServer(t *testing.T) *httptest.Server {
	t.Helper()
	subjects := []testutil.Subject{
		{Name: "S08", Rows: [][]string{
			testutil.Row("Lincoln", "Was Lincoln a lawyer?", "yes"),
			testutil.Row("Lincoln", "Where was he born?", "Kentucky"),
			testutil.Row("Lincoln", "Who shot him?", "John Wilkes Booth"),
		}},
		{Name: "S09", Rows: [][]string{
			testutil.Row("Beethoven", "Was Beethoven deaf?", "yes"),
			testutil.Row("Beethoven", "Where was he born?", "Bonn"),
			testutil.Row("Beethoven", "Did he marry?", "no"),
		}},
	}
	payload := testutil.TarGz(t, testutil.DatasetFiles("Question_Answer_Dataset_v1.2", subjects))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != archivePath {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

// writeProjectConfig writes .wikiqa/config.yml under root pointing at url.
func writeProjectConfig(t *testing.T, root, url string) string {
	t.Helper()
	path := config.ConfigPath(root)
	body := fmt.Sprintf(`version: 1
source:
  url: %q
workspace:
  dir: work
output:
  path: out/wikianswer_dataset.txt
`, url)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
