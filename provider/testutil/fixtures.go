package testutil

import (
	"time"

	"a2ui/model"
)

// TestMessages returns a sample conversation for testing
func TestMessages() []model.Message {
	return []model.Message{
		SystemMessage("You are a UI agent."),
		{Role: "user", Content: "Start the conversation.", Timestamp: time.Now()},
		{Role: "assistant", Content: UIReply, Timestamp: time.Now()},
		{Role: "user", Content: `User clicked button "go". Input values: {name: "Ada"}`, Timestamp: time.Now()},
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.Message {
	return []model.Message{
		{Role: "user", Content: content, Timestamp: time.Now()},
	}
}

// EmptyMessages returns an empty message slice for edge case testing
func EmptyMessages() []model.Message {
	return []model.Message{}
}

// SystemMessage returns a system message for testing
func SystemMessage(content string) model.Message {
	return model.Message{
		Role:      "system",
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Canned model replies.
const (
	UIReply = `{"type":"ui","components":[` +
		`{"type":"heading","id":"title","content":"Hello","level":1},` +
		`{"type":"input","id":"name","placeholder":"Your name"},` +
		`{"type":"button","id":"go","label":"Go","action":"submit"}]}`

	FencedUIReply = "Here you go:\n```json\n" + UIReply + "\n```"

	DualReply = `{"text":"Nice to meet you.","ui":` + UIReply + `}`

	NotJSONReply = "not json"

	UnknownKindReply = `{"type":"ui","components":[{"type":"carousel","id":"c"}]}`
)
