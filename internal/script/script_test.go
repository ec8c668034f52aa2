package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func TestStateDoStringAndCall(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function double(x) return x * 2 end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	ret, err := s.Call("double", lua.LNumber(21))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if ret != lua.LNumber(42) {
		t.Errorf("double(21) = %v, want 42", ret)
	}
}

func TestStateCallNoResult(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function noop() end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	ret, err := s.Call("noop")
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if ret != lua.LNil {
		t.Errorf("noop() = %v, want nil", ret)
	}
}

func TestStateCallMissing(t *testing.T) {
	s := NewState()
	defer s.Close()

	_, err := s.Call("missing")
	if !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(missing) error = %v, want ErrNotFunction", err)
	}
}

func TestStateSyntaxError(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`this is not lua`); err == nil {
		t.Error("DoString() expected syntax error")
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		if v := s.L.GetGlobal(name); v != lua.LNil {
			t.Errorf("global %q = %v, want nil", name, v)
		}
	}
	for _, name := range []string{"string", "table", "math", "tostring"} {
		if v := s.L.GetGlobal(name); v == lua.LNil {
			t.Errorf("global %q missing", name)
		}
	}
}

func TestStateTimeout(t *testing.T) {
	s := NewState(WithCallTimeout(20 * time.Millisecond))
	defer s.Close()

	if err := s.DoString(`function spin() while true do end end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	start := time.Now()
	if _, err := s.Call("spin"); err == nil {
		t.Fatal("Call(spin) expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Call(spin) took %v", elapsed)
	}

	// The state stays usable after a cancelled call.
	if err := s.DoString(`x = 1`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if s.HasFunction("x") {
		t.Error("HasFunction() = true on closed state")
	}
}

type label string

func (l label) String() string { return "label:" + string(l) }

func TestToLua(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want lua.LValue
	}{
		{"nil", nil, lua.LNil},
		{"bool", true, lua.LBool(true)},
		{"string", "abc", lua.LString("abc")},
		{"int", 7, lua.LNumber(7)},
		{"int64", int64(-3), lua.LNumber(-3)},
		{"uint8", uint8(200), lua.LNumber(200)},
		{"float", 2.5, lua.LNumber(2.5)},
		{"stringer", label("x"), lua.LString("label:x")},
		{"other", []int{1, 2}, lua.LString("[1 2]")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToLua(tt.in); got != tt.want {
				t.Errorf("ToLua(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

const upperNumbers = `
function format(value)
    if type(value) == "number" then
        return string.format("%05.1f", value)
    end
    if type(value) == "string" then
        return string.upper(value)
    end
    return nil
end
`

func TestFormatter(t *testing.T) {
	f, err := NewFormatter(upperNumbers)
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}
	defer f.Close()

	tests := []struct {
		in   any
		want string
	}{
		{3.14159, "003.1"},
		{12, "012.0"},
		{"abc", "ABC"},
		{true, "true"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := f.Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if f.Failures() != 0 {
		t.Errorf("Failures() = %d, want 0", f.Failures())
	}
}

func TestFormatterNumberResult(t *testing.T) {
	f, err := NewFormatter(`function format(v) return 42 end`)
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}
	defer f.Close()

	if got := f.Format("x"); got != "42" {
		t.Errorf("Format() = %q, want 42", got)
	}
}

func TestFormatterFallback(t *testing.T) {
	f, err := NewFormatter(`function format(v) return nil end`,
		WithFallback(func(v any) string { return "fb" }))
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}
	defer f.Close()

	if got := f.Format(1); got != "fb" {
		t.Errorf("Format() = %q, want fb", got)
	}
}

func TestFormatterErrors(t *testing.T) {
	var reported []error
	f, err := NewFormatter(`function format(v) error("boom") end`,
		WithErrorHandler(func(err error) { reported = append(reported, err) }))
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}
	defer f.Close()

	for range 3 {
		if got := f.Format(5); got != "5" {
			t.Errorf("Format() = %q, want fallback 5", got)
		}
	}
	if f.Failures() != 3 {
		t.Errorf("Failures() = %d, want 3", f.Failures())
	}
	if len(reported) != 1 || !strings.Contains(reported[0].Error(), "boom") {
		t.Errorf("reported = %v, want one boom error", reported)
	}
}

func TestFormatterBadResult(t *testing.T) {
	var reported error
	f, err := NewFormatter(`function format(v) return {} end`,
		WithErrorHandler(func(err error) { reported = err }))
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}
	defer f.Close()

	if got := f.Format("a"); got != "a" {
		t.Errorf("Format() = %q, want fallback a", got)
	}
	if !errors.Is(reported, ErrBadResult) {
		t.Errorf("reported = %v, want ErrBadResult", reported)
	}
}

func TestNewFormatterRequiresFunction(t *testing.T) {
	_, err := NewFormatter(`format = 1`)
	if !errors.Is(err, ErrNotFunction) {
		t.Errorf("NewFormatter() error = %v, want ErrNotFunction", err)
	}
}

func TestLoadFormatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "format.lua")
	if err := os.WriteFile(path, []byte(upperNumbers), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := LoadFormatter(path, WithStateOptions(WithCallTimeout(time.Second)))
	if err != nil {
		t.Fatalf("LoadFormatter() error = %v", err)
	}
	defer f.Close()

	if got := f.Format("ok"); got != "OK" {
		t.Errorf("Format() = %q, want OK", got)
	}
}

func TestLoadFormatterMissingFile(t *testing.T) {
	if _, err := LoadFormatter(filepath.Join(t.TempDir(), "nope.lua")); err == nil {
		t.Error("LoadFormatter() expected error for missing file")
	}
}
