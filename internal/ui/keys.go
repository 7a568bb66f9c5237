package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings shared across screens.
type keyMap struct {
	// Global
	Quit   key.Binding
	Back   key.Binding
	Tab    key.Binding
	Submit key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// List screens
	Refresh key.Binding
	New     key.Binding
	Delete  key.Binding
	Filter  key.Binding

	// Home
	AllGroups key.Binding
	MyGroups  key.Binding
	Profile   key.Binding

	// Group detail
	Join   key.Binding
	Leave  key.Binding
	Kick   key.Binding
	Posts  key.Binding
	Photos key.Binding
	Chat   key.Binding

	// Signup
	CheckNickname key.Binding

	// Profile
	Edit     key.Binding
	Password key.Binding
	Logout   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		AllGroups: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all groups"),
		),
		MyGroups: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "my groups"),
		),
		Profile: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "profile"),
		),
		Join: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "join"),
		),
		Leave: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "leave"),
		),
		Kick: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "kick member"),
		),
		Posts: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "board"),
		),
		Photos: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "photos"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chat"),
		),
		CheckNickname: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "check nickname"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		Password: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "change password"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
	}
}
