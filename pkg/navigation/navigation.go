package navigation

// Intent is a navigation command produced by classifiers and guards.
// The zero value means "stay where you are", so producers can return it
// without nil checks on the consumer side.
type Intent struct {
	Path    string
	Replace bool
}

// None returns an empty intent.
func None() Intent {
	return Intent{}
}

// NavigateTo returns an intent pointing at the given path.
func NavigateTo(path string, replace bool) Intent {
	return Intent{Path: path, Replace: replace}
}

// IsNone reports whether the intent carries no navigation command.
func (i Intent) IsNone() bool {
	return i.Path == ""
}

// Navigator executes navigation intents. Implementations are expected to be
// thin adapters over the host application's router.
type Navigator interface {
	Navigate(intent Intent)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(intent Intent)

func (f NavigatorFunc) Navigate(intent Intent) {
	f(intent)
}

// NoopNavigator discards all intents. Used as the default when the host
// application has not wired a router yet.
type NoopNavigator struct{}

func (NoopNavigator) Navigate(Intent) {}
