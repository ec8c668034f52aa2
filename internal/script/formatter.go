package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// FormatFunc is the global a formatter script must define.
const FormatFunc = "format"

// Formatter turns cell values into text by calling a script's format
// function. A nil result, or a failed call, falls back to another
// formatter.
type Formatter struct {
	state    *State
	fallback func(any) string
	onError  func(error)
	failures int
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithFallback sets the formatter used when the script returns nil or
// fails. The default is fmt.Sprint with nil shown as an empty string.
func WithFallback(f func(any) string) FormatterOption {
	return func(fm *Formatter) {
		if f != nil {
			fm.fallback = f
		}
	}
}

// WithErrorHandler receives the first failed call. Later failures are
// only counted, since a broken script fails on every cell.
func WithErrorHandler(fn func(error)) FormatterOption {
	return func(fm *Formatter) {
		fm.onError = fn
	}
}

// WithStateOptions configures the underlying Lua state.
func WithStateOptions(opts ...StateOption) FormatterOption {
	return func(fm *Formatter) {
		fm.state = NewState(opts...)
	}
}

// LoadFormatter runs the script at path and returns a formatter calling
// its format function.
func LoadFormatter(path string, opts ...FormatterOption) (*Formatter, error) {
	return newFormatter(func(s *State) error { return s.DoFile(path) }, opts)
}

// NewFormatter is LoadFormatter for script source held in memory.
func NewFormatter(source string, opts ...FormatterOption) (*Formatter, error) {
	return newFormatter(func(s *State) error { return s.DoString(source) }, opts)
}

func newFormatter(load func(*State) error, opts []FormatterOption) (*Formatter, error) {
	f := &Formatter{fallback: defaultFallback}
	for _, opt := range opts {
		opt(f)
	}
	if f.state == nil {
		f.state = NewState()
	}

	if err := load(f.state); err != nil {
		_ = f.state.Close()
		return nil, err
	}
	if !f.state.HasFunction(FormatFunc) {
		_ = f.state.Close()
		return nil, fmt.Errorf("global %q: %w", FormatFunc, ErrNotFunction)
	}
	return f, nil
}

// Format returns the display text for value.
func (f *Formatter) Format(value any) string {
	ret, err := f.state.Call(FormatFunc, ToLua(value))
	if err == nil {
		switch v := ret.(type) {
		case *lua.LNilType:
			return f.fallback(value)
		case lua.LString:
			return string(v)
		case lua.LNumber:
			return v.String()
		default:
			err = fmt.Errorf("%s returned %s: %w", FormatFunc, ret.Type(), ErrBadResult)
		}
	}

	f.failures++
	if f.failures == 1 && f.onError != nil {
		f.onError(err)
	}
	return f.fallback(value)
}

// Failures returns the number of calls that fell back after an error.
func (f *Formatter) Failures() int {
	return f.failures
}

// Close releases the Lua state.
func (f *Formatter) Close() error {
	return f.state.Close()
}

func defaultFallback(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
