package ai

import (
	"testing"

	"github.com/haivivi/callgear/pkg/convo"
)

func TestBuildOpenAIMessages(t *testing.T) {
	turns := []convo.Turn{
		{Role: convo.RoleSystem, Content: "sys"},
		{Role: convo.RoleUser, Content: "hi"},
		{Role: convo.RoleAssistant, Content: "hello"},
		{Role: "narrator", Content: "ignored"},
	}

	msgs := buildOpenAIMessages(turns)
	if len(msgs) != 3 {
		t.Fatalf("len(msgs) = %d; want 3 (unknown roles skipped)", len(msgs))
	}
	if msgs[0].OfSystem == nil {
		t.Error("msgs[0] should be a system message")
	}
	if msgs[1].OfUser == nil {
		t.Error("msgs[1] should be a user message")
	}
	if msgs[2].OfAssistant == nil {
		t.Error("msgs[2] should be an assistant message")
	}
}
