// Package watch rebuilds a book whenever its sources change.
//
// File events from fsnotify pass through ignore rules and a debouncer into a
// single rebuild worker, so bursts of edits produce one rebuild and at most
// one rebuild is ever in flight. An optional gocron job adds periodic
// rebuilds and an optional status server reports the last result.
package watch
