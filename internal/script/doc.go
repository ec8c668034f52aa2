// Package script runs user Lua code inside a restricted gopher-lua state.
//
// Its main use is cell formatting. A formatter script defines a global
// function that receives a cell value and returns its display text:
//
//	function format(value)
//	    if type(value) == "number" then
//	        return string.format("%8.3f", value)
//	    end
//	    return nil -- fall back to the built-in formatter
//	end
//
// Load it and hand Format to the table:
//
//	f, err := script.LoadFormatter("format.lua")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	table.SetFormatter(f.Format)
//
// # Sandbox
//
// Only the base, string, table and math libraries are opened. dofile,
// loadfile, load, loadstring and require are removed, so scripts cannot
// touch the file system or load other code. Every call runs under a
// deadline; a script that loops forever fails the call instead of
// freezing the terminal.
package script
