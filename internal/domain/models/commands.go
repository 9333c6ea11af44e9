package models

import "strings"

// StartCommand is the greeting command sent by Telegram when a user opens the bot.
const StartCommand = "/start"

// TextKind enumerates how an inbound chat text is handled.
type TextKind string

const (
	TextStart         TextKind = "start"
	TextInvalidLink   TextKind = "invalid_link"
	TextLinkCandidate TextKind = "link_candidate"
)

// ClassifyText derives the handling category of an already trimmed message text.
// The start command wins over everything else; any other text must contain
// marker to be considered a link.
func ClassifyText(text, marker string) TextKind {
	if text == StartCommand {
		return TextStart
	}
	if !strings.Contains(text, marker) {
		return TextInvalidLink
	}
	return TextLinkCandidate
}
