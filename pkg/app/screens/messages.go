package screens

import "github.com/kerbaras/holocron/pkg/data"

// SwitchScreenMsg asks the root screen to change view. Screen is "details"
// (Data is a Target) or "back".
type SwitchScreenMsg struct {
	Screen string
	Data   any
}

// Target identifies the resource a details screen shows.
type Target struct {
	Kind data.Kind
	ID   string
}

// TargetFor derives the target of a resource from its URL, falling back to
// kind when the URL does not name one.
func TargetFor(kind data.Kind, res data.Resource) Target {
	u := res.ResourceURL()
	if k, ok := data.KindFromURL(u); ok {
		kind = k
	}
	return Target{Kind: kind, ID: data.IDFromURL(u)}
}

type listLoadedMsg struct {
	kind data.Kind
}

type detailsLoadedMsg struct {
	target Target
}

type libraryLoadedMsg struct {
	entries []*data.Entry
	err     error
}

type savedMsg struct {
	entry *data.Entry
	err   error
}

type exportedMsg struct {
	path string
	err  error
}

type removedMsg struct {
	err error
}
