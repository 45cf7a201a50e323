package core

import "github.com/go-stack/stack"

// CallerInfo describes the call site that produced a record. It is
// captured only when a logger's IncludeCaller option is set, since stack
// unwinding is the one part of the producer path that is not free.
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// GetCaller captures the call site skip frames above the caller of
// GetCaller itself. It is built on go-stack/stack rather than raw
// runtime.Caller because stack.Call already separates the short file name
// from the full path and the function name without extra string surgery
// at each call site.
func GetCaller(skip int) CallerInfo {
	call := stack.Caller(skip + 1)
	frame := call.Frame()
	if frame.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      frame.File,
		ShortFile: shortFile(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}

func shortFile(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
