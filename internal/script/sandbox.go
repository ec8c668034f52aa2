package script

import lua "github.com/yuin/gopher-lua"

// removedGlobals can load code from outside the script.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// openSafeLibraries opens the libraries that cannot reach the host.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// restrict removes the loaders left behind by the base library.
func restrict(L *lua.LState) {
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}
