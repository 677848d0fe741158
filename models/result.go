package models

type resultKind int

const (
	resultContinue resultKind = iota
	resultHalt
	resultPass
)

// Result is the outcome of a pipeline stage. A halted result carries the
// terminal response; no further stage may run after it.
type Result struct {
	kind     resultKind
	response Response
}

// Continue reports that the stage finished without producing a response.
func Continue() Result {
	return Result{kind: resultContinue}
}

// Halt ends request processing with resp.
func Halt(resp Response) Result {
	return Result{kind: resultHalt, response: resp}
}

// Pass reports that nothing in this pipeline claimed the request, so the
// host may hand it to another handler.
func Pass() Result {
	return Result{kind: resultPass}
}

func (r Result) Halted() bool { return r.kind == resultHalt }

func (r Result) Passed() bool { return r.kind == resultPass }

// Response returns the terminal response of a halted result.
func (r Result) Response() Response { return r.response }
