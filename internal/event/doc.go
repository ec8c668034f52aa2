// Package event provides cellstorm's message pump.
//
// Widgets report what happened (a cell was highlighted, a row selected) by
// posting typed messages. Each message names a hierarchical topic:
//
//	datatable.cell.highlighted
//	datatable.row.selected
//	config.reloaded
//
// Subscribers register a topic pattern where "*" matches one segment and
// "**" matches zero or more:
//
//	datatable.*.selected  - any selection from a data table
//	datatable.**          - everything a data table posts
//
// # Scheduling
//
// The pump is cooperative. Post only queues; RunPending delivers queued
// messages in FIFO order on the caller's goroutine and, once the queue is
// empty, runs each idle handler exactly once. Idle handlers are where
// widgets coalesce expensive work such as recomputing table dimensions
// after a burst of row insertions. Messages posted by idle handlers are
// delivered on the next RunPending.
//
// Post is safe to call from any goroutine. Everything else is intended for
// the UI loop.
package event
