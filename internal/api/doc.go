// Package api implements the HTTP/JSON binding layer for the StudyApp
// server.
//
// # Overview
//
// The package exposes a single Client carrying one method per server
// endpoint: auth (signup, login, nickname check), groups (create, list,
// join, leave, kick, detail), board posts and comments, the photo
// gallery (multipart upload), group chat (full and incremental message
// fetch, send), and user profiles. DTO types mirror the server's JSON
// payloads; timestamps stay as server strings and are parsed only on
// demand.
//
// # Failure Taxonomy
//
// Two kinds of failure reach callers:
//
//   - Transport failures (connectivity, timeout, malformed JSON) are
//     plain wrapped errors. Callers surface a generic message for
//     these.
//   - Semantic failures (the server answered but declared the
//     operation unsuccessful via the shared success/message envelope)
//     are returned as *Error carrying the server's message verbatim.
//     This also covers 4xx/5xx responses whose body carries the
//     envelope.
//
// Use errors.As to distinguish the two:
//
//	_, err := client.Login(ctx, req)
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) {
//	    // server message, show verbatim
//	}
//
// # Transport
//
// Requests carry a 5 second timeout, Accept and User-Agent headers,
// and JSON bodies where the endpoint takes one. The base URL is
// normalized from a host:port or full URL value; path, query and
// fragment components are stripped.
//
// # Testing
//
// The ChatService interface covers the three chat endpoints and is
// satisfied by *Client; fakes implementing it drive the chat
// controller tests without a network.
package api
