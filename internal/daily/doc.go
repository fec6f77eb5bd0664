// Package daily turns a calendar date into a stable catalog page and
// in-page index, so every player sees the same puzzle on the same day
// without any server coordination.
package daily
