package chat

// Dictation is the injected speech-to-text capability. One capture may be
// active at a time; Start delivers exactly one final transcript through
// the handler before the capture ends.
type Dictation interface {
	Start(h DictationHandler) error
	Stop()
}

// DictationHandler receives capture outcomes. OnResult carries the single
// finalized transcript; OnError and OnEnd both terminate the capture
// without a result.
type DictationHandler interface {
	OnResult(transcript string)
	OnError(err error)
	OnEnd()
}
