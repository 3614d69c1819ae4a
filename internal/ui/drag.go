package ui

// DragSession records where the pointer was pressed on the divider.
type DragSession struct {
	X, Y int
}

// DragTracker holds the transient drag state. Its zero value is idle.
type DragTracker struct {
	session *DragSession
}

// Begin starts a session at the pressed position, replacing any session in
// progress.
func (t *DragTracker) Begin(x, y int) {
	t.session = &DragSession{X: x, Y: y}
}

// Update resolves a new first-region size from a pointer move. It returns
// false and does nothing when no session is active.
func (t *DragTracker) Update(axis Axis, x, y int) (float64, bool) {
	if t.session == nil {
		return 0, false
	}
	return ResolveSize(axis, x, y), true
}

// End clears the session. Returns whether one was active.
func (t *DragTracker) End() bool {
	if t.session == nil {
		return false
	}
	t.session = nil
	return true
}

// Active reports whether a drag is in progress.
func (t *DragTracker) Active() bool {
	return t.session != nil
}

// Session returns the current session, if any.
func (t *DragTracker) Session() (DragSession, bool) {
	if t.session == nil {
		return DragSession{}, false
	}
	return *t.session, true
}
