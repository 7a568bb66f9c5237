// Package request models the outcome of one asynchronous network
// operation as a four-phase state: Idle, Loading, Succeeded, Failed.
//
// Every screen renders directly from these states instead of carrying
// per-screen loading/error booleans. The contract for an operation:
//
//  1. Begin() publishes Loading. It refuses a second Begin while
//     Loading, so Loading is never published twice in a row.
//  2. The operation runs off the UI update loop (a tea.Cmd), so the
//     Loading phase is observably rendered before the result lands.
//  3. Resolve(value, err) publishes Succeeded(value), or Failed with
//     the server's message for semantic failures and a generic
//     message for transport failures (see Describe).
//
// Operations never auto-retry; a Failed state is cleared by invoking
// the operation again. Independent sub-operations on one screen (for
// example a nickname-availability check next to the signup submit)
// each hold their own State and cannot clobber one another.
package request
