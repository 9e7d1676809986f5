package state

// Banner is a transient message shown above the toolbar
type Banner struct {
	Text  string
	Error bool
	ID    int // identifies the banner so an old timer does not clear a newer one
}

// AppState contains the UI state that is not owned by the selection
// tracker or the toolbar controller
type AppState struct {
	Listing *Listing
	// ListingGen counts listing replacements so timers started for an
	// older listing can be recognised
	ListingGen uint64

	// Cursor state
	Cursor         int // index into Listing.RowIDs()
	ViewportOffset int // first visible line
	ViewportHeight int // available height for the list

	// UI state
	Loading       bool
	LoadError     string
	StatusMessage string
	Banner        Banner
	ShowHelp      bool

	bannerSeq int
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Listing:        NewListing(nil, nil),
		ViewportHeight: 20, // Default
		Loading:        true,
	}
}

// ReplaceListing installs a freshly loaded listing and resets the cursor
func (s *AppState) ReplaceListing(l *Listing) {
	s.Listing = l
	s.ListingGen++
	s.Cursor = 0
	s.ViewportOffset = 0
	s.ClampCursor()
}

// CurrentRowID returns the id of the row under the cursor
func (s *AppState) CurrentRowID() string {
	ids := s.Listing.RowIDs()
	if s.Cursor < 0 || s.Cursor >= len(ids) {
		return ""
	}
	return ids[s.Cursor]
}

// MoveCursor moves the cursor by delta rows, clamped to the listing
func (s *AppState) MoveCursor(delta int) {
	s.Cursor += delta
	s.ClampCursor()
}

// ClampCursor keeps the cursor on an existing row
func (s *AppState) ClampCursor() {
	n := s.Listing.Len()
	if s.Cursor >= n {
		s.Cursor = n - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// EnsureCursorVisible scrolls the viewport so the cursor row is on screen.
// Dividers directly above the row are kept in view when scrolling up.
func (s *AppState) EnsureCursorVisible() {
	lines := s.Listing.Lines()
	line := s.Listing.LineOf(s.CurrentRowID())
	if line < 0 {
		s.ViewportOffset = 0
		return
	}

	top := line
	for top > 0 && lines[top-1].Row == nil {
		top--
	}
	if top < s.ViewportOffset {
		s.ViewportOffset = top
	}
	if s.ViewportHeight > 0 && line >= s.ViewportOffset+s.ViewportHeight {
		s.ViewportOffset = line - s.ViewportHeight + 1
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
}

// ShowBanner sets a banner and returns its id
func (s *AppState) ShowBanner(text string, isError bool) int {
	s.bannerSeq++
	s.Banner = Banner{Text: text, Error: isError, ID: s.bannerSeq}
	return s.bannerSeq
}

// ClearBanner removes the banner if it is still the one with the given id
func (s *AppState) ClearBanner(id int) {
	if s.Banner.ID == id {
		s.Banner = Banner{}
	}
}
