package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInboundMessage_CommandText(t *testing.T) {
	text, ok := InboundMessage{Type: "text", Text: &TextContent{Body: "feed"}}.CommandText()
	assert.True(t, ok)
	assert.Equal(t, "feed", text)

	button := InboundMessage{
		Type:        "interactive",
		Interactive: &InteractiveContent{Type: "button_reply", ButtonReply: &ButtonReply{ID: "sleep", Title: "End the day"}},
	}
	text, ok = button.CommandText()
	assert.True(t, ok)
	assert.Equal(t, "sleep", text)

	_, ok = InboundMessage{Type: "image"}.CommandText()
	assert.False(t, ok)
}
