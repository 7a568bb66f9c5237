package ui

import "testing"

func TestHandleChatTick_PreviousVisitTickChainDies(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	updated, _ := m.enterChat(7)
	m = updated.(Model)
	firstGen := m.chatView.gen

	// Leave and come back to the same group.
	m.teardownChat()
	updated, _ = m.enterChat(7)
	m = updated.(Model)
	if m.chatView.gen == firstGen {
		t.Fatalf("gen = %d after re-entry, want a new generation", m.chatView.gen)
	}

	// A tick issued during the first visit matches the group but not
	// the generation, so it must not schedule a second tick chain.
	if _, cmd := m.handleChatTick(chatTickMsg{gen: firstGen}); cmd != nil {
		t.Fatal("cmd != nil, want the stale tick chain to end")
	}
	if _, cmd := m.handleChatTick(chatTickMsg{gen: m.chatView.gen}); cmd == nil {
		t.Fatal("cmd = nil, want the current tick chain to continue")
	}
}

func TestHandleChatStarted_PreviousVisitStartIsDropped(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	updated, _ := m.enterChat(7)
	m = updated.(Model)
	firstGen := m.chatView.gen

	m.teardownChat()
	updated, _ = m.enterChat(7)
	m = updated.(Model)

	if _, cmd := m.handleChatStarted(chatStartedMsg{gen: firstGen}); cmd != nil {
		t.Fatal("cmd != nil, want the stale start dropped")
	}
	if _, cmd := m.handleChatStarted(chatStartedMsg{gen: m.chatView.gen}); cmd == nil {
		t.Fatal("cmd = nil, want a tick scheduled for the current visit")
	}
}
