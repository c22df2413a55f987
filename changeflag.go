package batcher

// ChangeFlag is a dirty signal raised by every structural mutation of a
// batcher and cleared only by the caller.
//
// A single flag may be shared by several batchers (see WithChangeFlag) so
// that one check covers a whole scene. ChangeFlag is not safe for
// concurrent use.
type ChangeFlag struct {
	changed bool
}

// NewChangeFlag creates a cleared flag.
func NewChangeFlag() *ChangeFlag {
	return &ChangeFlag{}
}

// Set raises the flag.
func (f *ChangeFlag) Set() {
	f.changed = true
}

// Clear lowers the flag.
func (f *ChangeFlag) Clear() {
	f.changed = false
}

// Changed reports whether the flag is raised.
func (f *ChangeFlag) Changed() bool {
	return f.changed
}
