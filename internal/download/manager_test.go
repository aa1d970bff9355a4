package download

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/wpmirror/wpmirror/internal/errs"
	"github.com/wpmirror/wpmirror/internal/filter"
	"github.com/wpmirror/wpmirror/internal/logger"
	"github.com/wpmirror/wpmirror/internal/models"
	"github.com/wpmirror/wpmirror/internal/registry"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

type fakeArchives struct {
	byURL map[string][]byte
	calls []string
}

func (f *fakeArchives) FetchPage(context.Context, int, int) (*models.QueryResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeArchives) FetchArchive(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	data, ok := f.byURL[url]
	if !ok {
		return nil, &errs.NetworkError{URL: url, Status: 404}
	}
	return data, nil
}

var _ registry.Fetcher = (*fakeArchives)(nil)

func makeZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func treeOf(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(files)
	return files
}

func testPlugin(slug, link string, installs int) models.Plugin {
	return models.Plugin{Slug: slug, ActiveInstalls: installs, DownloadLink: link}
}

func TestProcess_SkipsOutOfBounds(t *testing.T) {
	reg := &fakeArchives{}
	max := 100
	mgr := New(reg, t.TempDir(), filter.Criteria{MinInstalls: 10, MaxInstalls: &max})

	tooSmall := testPlugin("small", "https://dl/small.zip", 5)
	tooBig := testPlugin("big", "https://dl/big.zip", 1000)

	for _, p := range []models.Plugin{tooSmall, tooBig} {
		out := mgr.Process(context.Background(), &p)
		if out.Status != StatusSkipped {
			t.Errorf("%s: status = %s, want skipped", p.Slug, out.Status)
		}
	}
	if len(reg.calls) != 0 {
		t.Errorf("no downloads expected for skipped plugins, got %v", reg.calls)
	}
}

func TestProcess_SkipsMissingDownloadLink(t *testing.T) {
	mgr := New(&fakeArchives{}, t.TempDir(), filter.Criteria{})
	p := testPlugin("linkless", "", 100)

	out := mgr.Process(context.Background(), &p)
	if out.Status != StatusSkipped {
		t.Errorf("status = %s, want skipped", out.Status)
	}
}

func TestProcess_DownloadsAndExtracts(t *testing.T) {
	dir := t.TempDir()
	reg := &fakeArchives{byURL: map[string][]byte{
		"https://dl/akismet.zip": makeZip(t, map[string]string{
			"akismet/akismet.php": "<?php",
			"akismet/readme.txt":  "readme",
		}),
	}}
	mgr := New(reg, dir, filter.Criteria{})
	p := testPlugin("akismet", "https://dl/akismet.zip", 100)

	out := mgr.Process(context.Background(), &p)
	if out.Status != StatusExtracted {
		t.Fatalf("status = %s (%s), want extracted", out.Status, out.Reason)
	}

	want := []string{filepath.Join("akismet", "akismet.php"), filepath.Join("akismet", "readme.txt")}
	got := treeOf(t, filepath.Join(dir, "plugins", "akismet"))
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("tree = %v, want %v", got, want)
	}
}

func TestProcess_NetworkFailureIsContained(t *testing.T) {
	mgr := New(&fakeArchives{}, t.TempDir(), filter.Criteria{})
	p := testPlugin("ghost", "https://dl/ghost.zip", 100)

	out := mgr.Process(context.Background(), &p)
	if out.Status != StatusFailed {
		t.Errorf("status = %s, want failed", out.Status)
	}
}

func TestProcessAll_CorruptArchiveDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	reg := &fakeArchives{byURL: map[string][]byte{
		"https://dl/foo.zip": []byte("garbage, not a zip"),
		"https://dl/bar.zip": makeZip(t, map[string]string{"bar/bar.php": "<?php"}),
	}}
	mgr := New(reg, dir, filter.Criteria{})

	sum := mgr.ProcessAll(context.Background(), []models.Plugin{
		testPlugin("foo", "https://dl/foo.zip", 10),
		testPlugin("bar", "https://dl/bar.zip", 10),
	})

	if sum.Failed != 1 || sum.Extracted != 1 {
		t.Errorf("summary = %+v, want 1 failed / 1 extracted", sum)
	}
	if _, err := os.Stat(filepath.Join(dir, "plugins", "bar", "bar", "bar.php")); err != nil {
		t.Errorf("bar should still be extracted: %v", err)
	}
}

func TestProcess_RedownloadRemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	first := makeZip(t, map[string]string{
		"pkg/keep.php":  "v1",
		"pkg/stale.php": "only in v1",
	})
	second := makeZip(t, map[string]string{
		"pkg/keep.php": "v2",
	})

	reg := &fakeArchives{byURL: map[string][]byte{"https://dl/pkg.zip": first}}
	mgr := New(reg, dir, filter.Criteria{})
	p := testPlugin("pkg", "https://dl/pkg.zip", 10)

	if out := mgr.Process(context.Background(), &p); out.Status != StatusExtracted {
		t.Fatalf("first run: %s (%s)", out.Status, out.Reason)
	}

	reg.byURL["https://dl/pkg.zip"] = second
	if out := mgr.Process(context.Background(), &p); out.Status != StatusExtracted {
		t.Fatalf("second run: %s (%s)", out.Status, out.Reason)
	}

	got := treeOf(t, filepath.Join(dir, "plugins", "pkg"))
	want := []string{filepath.Join("pkg", "keep.php")}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("tree after re-download = %v, want %v", got, want)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "plugins", "pkg", "pkg", "keep.php"))
	if string(content) != "v2" {
		t.Errorf("content = %q, want v2", content)
	}
}

func TestProcess_IdempotentWithSameArchive(t *testing.T) {
	dir := t.TempDir()
	archive := makeZip(t, map[string]string{"pkg/a.php": "a", "pkg/b.php": "b"})
	reg := &fakeArchives{byURL: map[string][]byte{"https://dl/pkg.zip": archive}}
	mgr := New(reg, dir, filter.Criteria{})
	p := testPlugin("pkg", "https://dl/pkg.zip", 10)

	if out := mgr.Process(context.Background(), &p); out.Status != StatusExtracted {
		t.Fatalf("first run: %s", out.Status)
	}
	firstTree := treeOf(t, filepath.Join(dir, "plugins", "pkg"))

	if out := mgr.Process(context.Background(), &p); out.Status != StatusExtracted {
		t.Fatalf("second run: %s", out.Status)
	}
	secondTree := treeOf(t, filepath.Join(dir, "plugins", "pkg"))

	if len(firstTree) != len(secondTree) {
		t.Fatalf("trees differ: %v vs %v", firstTree, secondTree)
	}
	for i := range firstTree {
		if firstTree[i] != secondTree[i] {
			t.Errorf("trees differ at %d: %v vs %v", i, firstTree, secondTree)
		}
	}
}
