// Package dag holds the resource dependency graph and the pure functions that
// resolve it: transitive upstream closure, merging of previous and current
// dependency maps, endpoint discovery, cycle reporting, and deploy levels.
//
// Every function takes its inputs explicitly and never mutates them.
package dag
