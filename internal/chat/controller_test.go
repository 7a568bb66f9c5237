package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/request"
)

// scriptedService is an in-memory api.ChatService with canned
// responses. Each gate blocks the first matching fetch so tests can
// hold it in flight.
type scriptedService struct {
	mu sync.Mutex

	messages      []api.Message
	messagesQueue [][]api.Message
	messagesErr   error
	messagesCalls int
	messagesGate  chan struct{}

	afterResults [][]api.Message
	afterErr     error
	afterCalls   []string
	gate         chan struct{}

	sendResult api.Message
	sendErr    error
}

var _ api.ChatService = (*scriptedService)(nil)

func (s *scriptedService) Messages(ctx context.Context, groupID int64) ([]api.Message, error) {
	s.mu.Lock()
	s.messagesCalls++
	result := s.messages
	if len(s.messagesQueue) > 0 {
		result = s.messagesQueue[0]
		s.messagesQueue = s.messagesQueue[1:]
	}
	err := s.messagesErr
	gate := s.messagesGate
	s.messagesGate = nil
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return result, err
}

func (s *scriptedService) MessagesAfter(ctx context.Context, groupID int64, after string) ([]api.Message, error) {
	s.mu.Lock()
	s.afterCalls = append(s.afterCalls, after)
	gate := s.gate
	var result []api.Message
	if len(s.afterResults) > 0 {
		result = s.afterResults[0]
		s.afterResults = s.afterResults[1:]
	}
	err := s.afterErr
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return result, err
}

func (s *scriptedService) SendMessage(ctx context.Context, groupID, userID int64, content string) (api.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendResult, s.sendErr
}

func (s *scriptedService) afterCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.afterCalls)
}

func (s *scriptedService) messagesCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messagesCalls
}

func msg(id int64, createdAt string) api.Message {
	return api.Message{MessageID: id, GroupID: 7, UserID: 1, Username: "mina", Content: "hi", CreatedAt: createdAt}
}

func messageIDs(messages []api.Message) []int64 {
	ids := make([]int64, len(messages))
	for i, m := range messages {
		ids[i] = m.MessageID
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStart_OrdersAscendingAndSetsCursor(t *testing.T) {
	t.Parallel()

	service := &scriptedService{messages: []api.Message{
		msg(3, "2024-05-01T10:02:00"),
		msg(1, "2024-05-01T10:00:00"),
		msg(2, "2024-05-01T10:01:00"),
		msg(3, "2024-05-01T10:02:00"), // duplicate id dropped
	}}
	c := NewController(service, 7, time.Minute)

	c.Start(context.Background())

	snap := c.Snapshot()
	if snap.Phase != request.Succeeded {
		t.Fatalf("Phase = %v, want Succeeded", snap.Phase)
	}
	if got, want := messageIDs(snap.Messages), []int64{1, 2, 3}; !equalIDs(got, want) {
		t.Fatalf("message ids = %v, want %v", got, want)
	}
	if snap.Cursor != "2024-05-01T10:02:00" {
		t.Fatalf("Cursor = %q, want newest timestamp", snap.Cursor)
	}
}

func TestStart_EmptyConversationSucceeds(t *testing.T) {
	t.Parallel()

	service := &scriptedService{}
	c := NewController(service, 7, time.Minute)

	c.Start(context.Background())

	snap := c.Snapshot()
	if snap.Phase != request.Succeeded {
		t.Fatalf("Phase = %v, want Succeeded", snap.Phase)
	}
	if len(snap.Messages) != 0 {
		t.Fatalf("messages = %v, want none", snap.Messages)
	}
	if snap.Cursor != "" {
		t.Fatalf("Cursor = %q, want empty", snap.Cursor)
	}
}

func TestStart_TransportFailurePublishesGenericError(t *testing.T) {
	t.Parallel()

	service := &scriptedService{messagesErr: errors.New("connection refused")}
	c := NewController(service, 7, time.Minute)

	c.Start(context.Background())

	snap := c.Snapshot()
	if snap.Phase != request.Failed {
		t.Fatalf("Phase = %v, want Failed", snap.Phase)
	}
	if snap.Reason != request.GenericFailure {
		t.Fatalf("Reason = %q, want %q", snap.Reason, request.GenericFailure)
	}
}

func TestStart_SemanticFailureKeepsServerMessage(t *testing.T) {
	t.Parallel()

	service := &scriptedService{messagesErr: &api.Error{Message: "채팅방에 참여하지 않았습니다."}}
	c := NewController(service, 7, time.Minute)

	c.Start(context.Background())

	snap := c.Snapshot()
	if snap.Reason != "채팅방에 참여하지 않았습니다." {
		t.Fatalf("Reason = %q, want the server message verbatim", snap.Reason)
	}
}

func TestStart_SecondCallSupersedesFirst(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	service := &scriptedService{
		messagesQueue: [][]api.Message{
			{msg(1, "2024-05-01T10:00:00")},
			{msg(2, "2024-05-01T09:00:00")},
		},
		messagesGate: gate,
	}
	c := NewController(service, 7, time.Minute)

	first := make(chan struct{})
	go func() {
		defer close(first)
		c.Start(context.Background())
	}()

	deadline := time.After(time.Second)
	for service.messagesCallCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("first fetch never started")
		case <-time.After(time.Millisecond):
		}
	}

	c.Start(context.Background())

	close(gate)
	<-first

	snap := c.Snapshot()
	if got, want := messageIDs(snap.Messages), []int64{2}; !equalIDs(got, want) {
		t.Fatalf("message ids = %v, want %v", got, want)
	}
	if snap.Cursor != "2024-05-01T09:00:00" {
		t.Fatalf("Cursor = %q, want the second call's timestamp", snap.Cursor)
	}
}

func TestPollOnce_AppendsNewAndAdvancesCursor(t *testing.T) {
	t.Parallel()

	service := &scriptedService{
		messages: []api.Message{msg(1, "2024-05-01T10:00:00")},
		afterResults: [][]api.Message{{
			msg(1, "2024-05-01T10:00:00"), // already known
			msg(2, "2024-05-01T10:01:00"),
			msg(3, "2024-05-01T10:02:00"),
		}},
	}
	c := NewController(service, 7, time.Minute)
	c.Start(context.Background())

	c.pollOnce(context.Background())

	snap := c.Snapshot()
	if got, want := messageIDs(snap.Messages), []int64{1, 2, 3}; !equalIDs(got, want) {
		t.Fatalf("message ids = %v, want %v", got, want)
	}
	if snap.Cursor != "2024-05-01T10:02:00" {
		t.Fatalf("Cursor = %q, want latest incoming timestamp", snap.Cursor)
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	if len(service.afterCalls) != 1 || service.afterCalls[0] != "2024-05-01T10:00:00" {
		t.Fatalf("after params = %v, want one call with the previous cursor", service.afterCalls)
	}
}

func TestPollOnce_SkipsWithoutCursor(t *testing.T) {
	t.Parallel()

	service := &scriptedService{}
	c := NewController(service, 7, time.Minute)
	c.Start(context.Background()) // empty conversation, no cursor

	c.pollOnce(context.Background())

	if n := service.afterCallCount(); n != 0 {
		t.Fatalf("MessagesAfter called %d times, want 0", n)
	}
}

func TestPollOnce_FailureIsSilent(t *testing.T) {
	t.Parallel()

	service := &scriptedService{
		messages: []api.Message{msg(1, "2024-05-01T10:00:00")},
		afterErr: errors.New("timeout"),
	}
	c := NewController(service, 7, time.Minute)
	c.Start(context.Background())

	c.pollOnce(context.Background())

	snap := c.Snapshot()
	if snap.Phase != request.Succeeded {
		t.Fatalf("Phase = %v, want Succeeded after a failed tick", snap.Phase)
	}
	if got, want := messageIDs(snap.Messages), []int64{1}; !equalIDs(got, want) {
		t.Fatalf("message ids = %v, want %v", got, want)
	}
	if snap.Cursor != "2024-05-01T10:00:00" {
		t.Fatalf("Cursor = %q, want unchanged", snap.Cursor)
	}
}

func TestPollOnce_EmptyIncrementKeepsCursor(t *testing.T) {
	t.Parallel()

	service := &scriptedService{
		messages:     []api.Message{msg(1, "2024-05-01T10:00:00")},
		afterResults: [][]api.Message{{}},
	}
	c := NewController(service, 7, time.Minute)
	c.Start(context.Background())

	c.pollOnce(context.Background())

	snap := c.Snapshot()
	if got, want := messageIDs(snap.Messages), []int64{1}; !equalIDs(got, want) {
		t.Fatalf("message ids = %v, want %v", got, want)
	}
	if snap.Cursor != "2024-05-01T10:00:00" {
		t.Fatalf("Cursor = %q, want unchanged", snap.Cursor)
	}
}

func TestStopPolling_DiscardsInFlightResult(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	service := &scriptedService{
		messages:     []api.Message{msg(1, "2024-05-01T10:00:00")},
		afterResults: [][]api.Message{{msg(2, "2024-05-01T10:01:00")}},
		gate:         gate,
	}
	c := NewController(service, 7, time.Minute)
	c.Start(context.Background())

	done := make(chan struct{})
	go func() {
		c.pollOnce(context.Background())
		close(done)
	}()

	// Wait for the fetch to be in flight, then stop polling before
	// releasing it.
	deadline := time.After(2 * time.Second)
	for service.afterCallCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("fetch never started")
		case <-time.After(time.Millisecond):
		}
	}
	c.StopPolling()
	close(gate)
	<-done

	snap := c.Snapshot()
	if got, want := messageIDs(snap.Messages), []int64{1}; !equalIDs(got, want) {
		t.Fatalf("message ids = %v, want the stale tick discarded: %v", got, want)
	}
}

func TestStopPolling_IsIdempotent(t *testing.T) {
	t.Parallel()

	c := NewController(&scriptedService{}, 7, time.Minute)
	c.StopPolling()
	c.StopPolling()
}

func TestBeginPolling_AfterStopIsRefused(t *testing.T) {
	t.Parallel()

	service := &scriptedService{
		messages: []api.Message{msg(1, "2024-05-01T10:00:00")},
	}
	c := NewController(service, 7, 5*time.Millisecond)
	c.Start(context.Background())

	// The screen startup runs Start and BeginPolling as one async
	// command, so a teardown can land between them.
	c.StopPolling()
	c.BeginPolling(context.Background())

	time.Sleep(50 * time.Millisecond)
	if n := service.afterCallCount(); n != 0 {
		t.Fatalf("MessagesAfter called %d times after teardown, want 0", n)
	}
}

func TestBeginPolling_FetchesOnTicks(t *testing.T) {
	t.Parallel()

	service := &scriptedService{
		messages: []api.Message{msg(1, "2024-05-01T10:00:00")},
		afterResults: [][]api.Message{
			{msg(2, "2024-05-01T10:01:00")},
		},
	}
	c := NewController(service, 7, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	c.Start(ctx)
	c.BeginPolling(ctx)
	t.Cleanup(c.StopPolling)

	deadline := time.After(2 * time.Second)
	for {
		snap := c.Snapshot()
		if len(snap.Messages) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("poll never delivered the new message; have ids %v", messageIDs(snap.Messages))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSend_AppendsServerEcho(t *testing.T) {
	t.Parallel()

	service := &scriptedService{
		messages:   []api.Message{msg(1, "2024-05-01T10:00:00")},
		sendResult: msg(2, "2024-05-01T10:05:00"),
	}
	c := NewController(service, 7, time.Minute)
	c.Start(context.Background())

	if err := c.Send(context.Background(), 1, "hello"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	snap := c.Snapshot()
	if got, want := messageIDs(snap.Messages), []int64{1, 2}; !equalIDs(got, want) {
		t.Fatalf("message ids = %v, want %v", got, want)
	}
	if snap.Cursor != "2024-05-01T10:05:00" {
		t.Fatalf("Cursor = %q, want the echoed timestamp", snap.Cursor)
	}
}

func TestSend_FailureLeavesConversationUntouched(t *testing.T) {
	t.Parallel()

	service := &scriptedService{
		messages: []api.Message{msg(1, "2024-05-01T10:00:00")},
		sendErr:  errors.New("timeout"),
	}
	c := NewController(service, 7, time.Minute)
	c.Start(context.Background())

	if err := c.Send(context.Background(), 1, "hello"); err == nil {
		t.Fatal("Send returned nil, want an error")
	}

	snap := c.Snapshot()
	if got, want := messageIDs(snap.Messages), []int64{1}; !equalIDs(got, want) {
		t.Fatalf("message ids = %v, want %v", got, want)
	}
	if snap.Cursor != "2024-05-01T10:00:00" {
		t.Fatalf("Cursor = %q, want unchanged", snap.Cursor)
	}
}

func TestSnapshot_CopyIsIndependent(t *testing.T) {
	t.Parallel()

	service := &scriptedService{messages: []api.Message{msg(1, "2024-05-01T10:00:00")}}
	c := NewController(service, 7, time.Minute)
	c.Start(context.Background())

	snap := c.Snapshot()
	snap.Messages[0].Content = "mutated"

	if c.Snapshot().Messages[0].Content != "hi" {
		t.Fatal("mutating a snapshot leaked into the controller")
	}
}
