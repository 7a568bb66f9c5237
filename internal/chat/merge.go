package chat

import (
	"sort"
	"time"

	"github.com/dkim82/studyhall/internal/api"
)

// orderMessages returns a copy sorted ascending by CreatedAt, ties
// broken by MessageID ascending, with duplicate ids dropped (first
// occurrence wins). Used for the initial full fetch.
func orderMessages(messages []api.Message) []api.Message {
	if len(messages) == 0 {
		return []api.Message{}
	}
	out := make([]api.Message, 0, len(messages))
	seen := make(map[int64]struct{}, len(messages))
	for _, m := range messages {
		if _, dup := seen[m.MessageID]; dup {
			continue
		}
		seen[m.MessageID] = struct{}{}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return messageLess(out[i], out[j])
	})
	return out
}

// appendNew appends incoming messages in their given order, skipping
// ids already present. If a server response ever arrives out of order
// the combined list is re-sorted, so the ascending invariant holds for
// any tick sequence.
func appendNew(existing, incoming []api.Message) []api.Message {
	seen := make(map[int64]struct{}, len(existing))
	for _, m := range existing {
		seen[m.MessageID] = struct{}{}
	}
	out := make([]api.Message, len(existing), len(existing)+len(incoming))
	copy(out, existing)
	for _, m := range incoming {
		if _, dup := seen[m.MessageID]; dup {
			continue
		}
		seen[m.MessageID] = struct{}{}
		out = append(out, m)
	}
	if !messagesOrdered(out) {
		sort.SliceStable(out, func(i, j int) bool {
			return messageLess(out[i], out[j])
		})
	}
	return out
}

func messagesOrdered(messages []api.Message) bool {
	for i := 1; i < len(messages); i++ {
		if messageLess(messages[i], messages[i-1]) {
			return false
		}
	}
	return true
}

// messageLess orders by CreatedAt, ties by MessageID. The server is
// the sole timestamp authority, so unparsable values fall back to a
// lexical comparison of the raw strings.
func messageLess(a, b api.Message) bool {
	at, bt := a.ParsedCreatedAt(), b.ParsedCreatedAt()
	switch {
	case !at.IsZero() && !bt.IsZero() && !at.Equal(bt):
		return at.Before(bt)
	case (at.IsZero() || bt.IsZero()) && a.CreatedAt != b.CreatedAt:
		return a.CreatedAt < b.CreatedAt
	default:
		return a.MessageID < b.MessageID
	}
}

// timestampBefore reports whether server timestamp a precedes b.
func timestampBefore(a, b string) bool {
	at := parseCursor(a)
	bt := parseCursor(b)
	if !at.IsZero() && !bt.IsZero() {
		return at.Before(bt)
	}
	return a < b
}

func parseCursor(value string) time.Time {
	return api.Message{CreatedAt: value}.ParsedCreatedAt()
}
