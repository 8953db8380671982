package today

import "github.com/abhisek/transform90/internal/tracker"

// viewLoadedMsg carries a fresh TodayView.
type viewLoadedMsg struct {
	View tracker.TodayView
	Err  error
}

// completedMsg is sent after the day was submitted.
type completedMsg struct {
	Result *tracker.CompleteResult
	Err    error
}

// actionFailedMsg reports a failed toggle, note save or book switch.
type actionFailedMsg struct {
	Err error
}
