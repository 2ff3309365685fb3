// Package ui provides the Bubble Tea TUI for trendwatch.
package ui

import (
	"time"

	"github.com/abelbrown/trendwatch/internal/loader"
	"github.com/abelbrown/trendwatch/internal/trend"
)

// HourLoaded is sent when a loader request finishes, successfully or not.
type HourLoaded struct {
	Result loader.Result
}

// DetailLoaded is sent when a detail fetch finishes. Seq correlates it
// with the detail view that asked, so a late answer for a view the user
// already left is dropped.
type DetailLoaded struct {
	Seq    int
	ID     int
	Detail *trend.Detail
	Err    error
}

// ThemeTick triggers a poll of the OS dark-mode setting.
type ThemeTick struct{}

// OSThemeRead carries one OS dark-mode reading.
type OSThemeRead struct {
	Dark bool
	Err  error
}

// LinkCopied is sent after the share link was put on the clipboard.
type LinkCopied struct {
	Link string
	Err  error
}

// SourceOpened is sent after asking the platform to open a URL.
type SourceOpened struct {
	URL string
	Err error
}

// ViewRecorded is sent after a detail view was written to history.
type ViewRecorded struct {
	Err error
}

// ClearNotice hides a transient status line message.
type ClearNotice struct {
	At time.Time
}
