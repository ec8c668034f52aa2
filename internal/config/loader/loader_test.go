package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// memFS is an in-memory FileSystem for tests.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return fakeInfo(path), nil
}

type fakeInfo string

func (f fakeInfo) Name() string       { return filepath.Base(string(f)) }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() any           { return nil }

func TestTOMLLoader(t *testing.T) {
	fsys := memFS{"/cfg.toml": `
[table]
fixed_rows = 2
zebra_stripes = true

[theme.header]
fg = "#ffffff"
`}
	got, err := NewTOMLLoaderWithFS(fsys, "/cfg.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	table, ok := got["table"].(map[string]any)
	if !ok {
		t.Fatalf("table section = %T", got["table"])
	}
	if table["fixed_rows"] != int64(2) {
		t.Errorf("fixed_rows = %#v, want 2", table["fixed_rows"])
	}
	if table["zebra_stripes"] != true {
		t.Errorf("zebra_stripes = %#v, want true", table["zebra_stripes"])
	}
	header := got["theme"].(map[string]any)["header"].(map[string]any)
	if header["fg"] != "#ffffff" {
		t.Errorf("theme.header.fg = %#v", header["fg"])
	}
}

func TestTOMLLoaderMissingFile(t *testing.T) {
	got, err := NewTOMLLoaderWithFS(memFS{}, "/missing.toml").Load()
	if err != nil || got != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", got, err)
	}
}

func TestTOMLLoaderParseError(t *testing.T) {
	fsys := memFS{"/bad.toml": "[table]\nfixed_rows = = 2\n"}
	_, err := NewTOMLLoaderWithFS(fsys, "/bad.toml").Load()

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q", pe.Path)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestYAMLLoader(t *testing.T) {
	fsys := memFS{"/cfg.yaml": `
table:
  cursor_type: row
  header_height: 2
theme:
  cursor:
    bg: "#00ff00"
`}
	got, err := NewYAMLLoaderWithFS(fsys, "/cfg.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	table, ok := got["table"].(map[string]any)
	if !ok {
		t.Fatalf("table section = %T", got["table"])
	}
	if table["cursor_type"] != "row" {
		t.Errorf("cursor_type = %#v", table["cursor_type"])
	}
	if table["header_height"] != 2 {
		t.Errorf("header_height = %#v, want 2", table["header_height"])
	}
	if _, ok := got["theme"].(map[string]any)["cursor"].(map[string]any); !ok {
		t.Errorf("theme.cursor = %T", got["theme"].(map[string]any)["cursor"])
	}
}

func TestYAMLLoaderParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("table: [unclosed"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Path != "<reader>" {
		t.Errorf("Path = %q", pe.Path)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		err  bool
	}{
		{"a.toml", "*loader.TOMLLoader", false},
		{"a.TOML", "*loader.TOMLLoader", false},
		{"a.yaml", "*loader.YAMLLoader", false},
		{"a.yml", "*loader.YAMLLoader", false},
		{"a.json", "", true},
	}

	for _, tt := range tests {
		l, err := ForPath(memFS{}, tt.path)
		if tt.err {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForPath(%q) error = %v", tt.path, err)
			continue
		}
		if got := typeName(l); got != tt.want {
			t.Errorf("ForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func typeName(l FileLoader) string {
	switch l.(type) {
	case *TOMLLoader:
		return "*loader.TOMLLoader"
	case *YAMLLoader:
		return "*loader.YAMLLoader"
	default:
		return "unknown"
	}
}

func TestOSFS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewTOMLLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got["logging"].(map[string]any)["level"] != "debug" {
		t.Errorf("logging.level = %#v", got["logging"])
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"table": map[string]any{"fixed_rows": 1, "zebra_stripes": false},
		"keep":  "yes",
	}
	src := map[string]any{
		"table": map[string]any{"zebra_stripes": true},
		"new":   1,
	}

	got := DeepMerge(dst, src)
	table := got["table"].(map[string]any)
	if table["fixed_rows"] != 1 || table["zebra_stripes"] != true {
		t.Errorf("table = %v", table)
	}
	if got["keep"] != "yes" || got["new"] != 1 {
		t.Errorf("merged = %v", got)
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v", got)
	}
}

func TestEnvLoader(t *testing.T) {
	env := map[string]string{
		"CELLSTORM_TABLE_FIXED_ROWS":    "3",
		"CELLSTORM_TABLE_ZEBRA_STRIPES": "yes",
		"CELLSTORM_LOGGING_LEVEL":       "debug",
		"CELLSTORM_UNMAPPED":            "ignored",
	}
	l := NewEnvLoader("CELLSTORM_", "table.fixed_rows", "table.zebra_stripes", "logging.level", "cache.cell_entries")
	l.lookup = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	table := got["table"].(map[string]any)
	if table["fixed_rows"] != int64(3) {
		t.Errorf("fixed_rows = %#v, want 3", table["fixed_rows"])
	}
	if table["zebra_stripes"] != true {
		t.Errorf("zebra_stripes = %#v, want true", table["zebra_stripes"])
	}
	if got["logging"].(map[string]any)["level"] != "debug" {
		t.Errorf("logging = %v", got["logging"])
	}
	if _, ok := got["cache"]; ok {
		t.Error("unset variables should not create sections")
	}
	if _, ok := got["unmapped"]; ok {
		t.Error("unmapped variables should be ignored")
	}
}

func TestEnvLoaderMappingChanges(t *testing.T) {
	l := NewEnvLoaderWithMapping("X_", nil)
	l.AddMapping("X_LEVEL", "logging.level")
	l.lookup = func(k string) (string, bool) { return "warn", k == "X_LEVEL" }

	got, _ := l.Load()
	if got["logging"].(map[string]any)["level"] != "warn" {
		t.Errorf("logging = %v", got["logging"])
	}

	l.RemoveMapping("X_LEVEL")
	got, _ = l.Load()
	if len(got) != 0 {
		t.Errorf("after RemoveMapping = %v", got)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"OFF", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"row", "row"},
		{"#ff0000", "#ff0000"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestPathToEnv(t *testing.T) {
	if got := PathToEnv("CELLSTORM_", "cache.line_entries"); got != "CELLSTORM_CACHE_LINE_ENTRIES" {
		t.Errorf("PathToEnv = %q", got)
	}
}
