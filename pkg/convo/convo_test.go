package convo

import "testing"

func TestNewTranscriptSeedsSystemTurn(t *testing.T) {
	tr := NewTranscript("You are a receptionist.")

	if tr.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", tr.Len())
	}
	turns := tr.Turns()
	if turns[0].Role != RoleSystem {
		t.Errorf("turns[0].Role = %q; want %q", turns[0].Role, RoleSystem)
	}
	if turns[0].Content != "You are a receptionist." {
		t.Errorf("turns[0].Content = %q", turns[0].Content)
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	tr := NewTranscript("sys")
	tr.AppendUser("hello")
	tr.AppendAssistant("hi there")
	tr.AppendUser("bye")

	want := []Turn{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi there"},
		{Role: RoleUser, Content: "bye"},
	}
	got := tr.Turns()
	if len(got) != len(want) {
		t.Fatalf("Turns() len = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("turns[%d] = %+v; want %+v", i, got[i], want[i])
		}
	}

	// Exactly one system turn, and it is the first.
	for i, turn := range got[1:] {
		if turn.Role == RoleSystem {
			t.Errorf("turns[%d] has role system; only turns[0] may", i+1)
		}
	}
}

func TestTurnsReturnsCopy(t *testing.T) {
	tr := NewTranscript("sys")
	tr.AppendUser("hello")

	turns := tr.Turns()
	turns[0].Content = "mutated"

	if tr.Turns()[0].Content != "sys" {
		t.Error("mutating the returned slice changed the transcript")
	}
}

func TestLast(t *testing.T) {
	tr := NewTranscript("sys")
	if tr.Last().Role != RoleSystem {
		t.Errorf("Last().Role = %q; want system", tr.Last().Role)
	}
	tr.AppendUser("hello")
	if tr.Last() != (Turn{Role: RoleUser, Content: "hello"}) {
		t.Errorf("Last() = %+v", tr.Last())
	}
}
