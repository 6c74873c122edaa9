// Package events holds message types sent into the TUI from background
// goroutines such as the directory watcher.
package events

// DirChangedMsg reports that the contents of Dir changed on disk.
type DirChangedMsg struct {
	Dir string
}

// WatchErrorMsg reports a watcher failure. The TUI keeps running without
// live refresh.
type WatchErrorMsg struct {
	Err error
}
