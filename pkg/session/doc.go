/*
Package session implements workspace management and persistence orchestration.

A Manager serializes read-modify-write cycles on saved editor workspaces, so that
concurrent HTTP requests (or several server replicas sharing a Redis store and a
DistributedLocker) never lose an edit.
*/
package session
