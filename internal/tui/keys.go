package tui

// Key strings as reported by tea.KeyMsg.String().
const (
	keyQuit    = "q"
	keyCtrlC   = "ctrl+c"
	keyEnter   = "enter"
	keyEsc     = "esc"
	keySlash   = "/"
	keyRefresh = "r"
)

// Layout defaults used until the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
	minListHeight = 3

	// chromeHeight covers the title, search box, status and help lines.
	chromeHeight = 6

	searchCharLimit = 64
	searchWidth     = 30
)
