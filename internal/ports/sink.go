package ports

// OutputSink receives the text streamed out of an invocation. The engine
// only ever writes to it; implementations may be called from several
// goroutines and must be safe for that.
type OutputSink interface {
	WriteLine(text string)
	WriteErrorLine(text string)
	WriteWarningLine(text string)
}
