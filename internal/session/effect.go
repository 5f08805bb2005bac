package session

// Effect describes file work for the runtime to perform asynchronously. Every
// effect yields exactly one completion Message. A nil Effect means nothing to
// do.
type Effect interface {
	isEffect()
}

// OpenFile reads Path. An empty Path means the user picks one. Completes with
// OpenFileCompleted.
type OpenFile struct {
	Path string
}

// SaveFile writes Contents to Path. An empty Path means the user picks one.
// Completes with SaveFileCompleted.
type SaveFile struct {
	Path     string
	Contents string
}

func (OpenFile) isEffect() {}
func (SaveFile) isEffect() {}
