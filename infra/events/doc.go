// Package events is the in-process fan-out channel for collector
// activity. Publishing never blocks the collection path: a subscriber
// that falls behind loses events rather than stalling a sweep.
package events
