// Package chat keeps one group chat's local message log eventually
// consistent with the server by polling.
//
// # Lifecycle
//
// The owning screen creates one Controller per open conversation,
// calls Start for the initial full fetch, BeginPolling for the
// repeating incremental fetch, and StopPolling on every exit path.
// StopPolling retires the controller: a BeginPolling arriving after it
// is refused, so an exit racing the asynchronous startup cannot leave
// a timer running. The poll timer is a scoped resource, never left to
// garbage collection.
//
// # Consistency Model
//
//   - The message list stays sorted ascending by CreatedAt (ties by
//     MessageID) and never holds a duplicate id.
//   - The cursor is the CreatedAt of the newest known message and is
//     at least as new as every held message. Poll ticks fetch strictly
//     newer messages; a tick with an unset cursor is a no-op.
//   - Overlap policy is skip-if-busy: if a tick's fetch has not
//     returned when the next tick fires, the new tick is skipped.
//   - An epoch counter discards stale responses: results belonging to
//     a superseded Start, or arriving after StopPolling, never touch
//     the state.
//
// # Failure Semantics
//
// The initial fetch failure is user-visible and retried by calling
// Start again. Poll-tick failures are swallowed entirely, matching
// best-effort polling. Send failures are returned to the caller and
// leave the conversation state untouched; a message only appears once
// the server echoes it back.
package chat
