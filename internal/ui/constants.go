// Package ui provides shared UI constants and utilities.
package ui

// Layout constants shared by the screens.
const (
	// ScrollMargin is the number of rows kept visible above/below the cursor.
	ScrollMargin = 2

	// HeaderHeight is the tab bar plus its separator.
	HeaderHeight = 2

	// FooterHeight is the status line plus the message/command line.
	FooterHeight = 2

	// ChromeHeight is everything around the list area.
	ChromeHeight = HeaderHeight + FooterHeight

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5
)
