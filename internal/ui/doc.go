// Package ui provides the terminal user interface for studyhall.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea's model-update-view loop. A single
// root Model owns per-screen state structs; Update routes key events
// to the active screen and async results to the screen that issued
// them, regardless of which screen is currently visible.
//
// # Package Structure
//
//   - app.go: root Model, screen routing, and the main Run function
//   - login.go / signup.go: authentication forms
//   - home.go: group discovery, my-groups tab, and group creation
//   - groupdetail.go: membership view with join, leave, and kick
//   - posts.go / postdetail.go: group board with comments
//   - photos.go: group photo album with upload and delete
//   - chatview.go: group chat backed by a chat.Controller
//   - profile.go: profile view, edit, password change, and logout
//   - theme.go / keys.go / helpers.go: shared presentation utilities
//
// # Result Handling
//
// Every remote operation is tracked by a request.State value owned by
// its screen. Handlers follow one pattern: Begin before dispatching
// the command, ignore results that arrive when the state is no longer
// Loading (the operation was superseded), then Resolve. List-shaped
// data is never patched in place after a mutation; a successful join,
// kick, comment or photo change triggers a full re-fetch of the
// authoritative list.
//
// # Chat
//
// The chat screen is the only one with a background component. The
// chat.Controller polls the server on its own timer; the screen reads
// controller snapshots on a tea.Tick chain and tears the controller
// down on every exit path, including quit.
//
// # Key Bindings
//
//   - j/k or arrows: move selection
//   - enter: open / submit
//   - a, m, f: all groups, my groups, cycle category filter
//   - n: new (group, post, comment, photo)
//   - g, l, x: join, leave, kick
//   - p, o, c: posts, photos, chat for the open group
//   - u: profile, e: edit, w: change password, L: log out
//   - r: refresh, esc: back, ctrl+c: quit
package ui
