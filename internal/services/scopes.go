package services

import "audiotech/internal/repos"

// Scopes are the two storage lifetimes of one client: Local survives
// browser restarts, Session ends with the browser session.
type Scopes struct {
	Local   repos.Store
	Session repos.Store
}
