package session

import "github.com/lumikids/lumi/internal/content"

// itemsLoadedMsg carries the fetched plan back to the event loop,
// produced by either the configured source or the fallback path. The
// orchestrator installs it synchronously in Update.
type itemsLoadedMsg struct {
	Plan         content.SessionPlan
	UsedFallback bool
}

// hintFetchedMsg carries a resolved hint back to the event loop. ItemID
// lets the orchestrator discard resolutions for items already advanced
// past.
type hintFetchedMsg struct {
	ItemID string
	Text   string
}

// advanceMsg fires when the post-submit pacing delay elapses.
type advanceMsg struct{}
