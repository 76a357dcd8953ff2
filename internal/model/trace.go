package model

// TraceEvent is one parsed record from the interpreter's debug-trace
// stream. Symbol is empty when the traced statement was not a function
// invocation. Args keeps the raw argument text for debug logging only.
type TraceEvent struct {
	File   Path
	Line   int
	Symbol string
	Args   string
}

// SymbolDecl is one entry of the declared-function enumeration taken
// from the traced process at finalization time.
type SymbolDecl struct {
	Name string
	File Path
	Line int
}
