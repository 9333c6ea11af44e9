package models

// ActionButton is an inline URL button attached to a chat message.
type ActionButton struct {
	Label string
	URL   string
}

// OutboundReply describes a message sent back to a chat, with an optional button.
type OutboundReply struct {
	ChatID int64
	Text   string
	Button *ActionButton
}
