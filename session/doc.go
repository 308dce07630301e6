// Package session provides the idle-expiring store behind session-scoped
// beans, and a Sweeper component that evicts expired entries in the
// background.
//
// Entries expire independently: each one carries its own last-used time,
// refreshed on every Get. The default idle timeout is 30 minutes.
package session
