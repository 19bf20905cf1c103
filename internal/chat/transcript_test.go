package chat

import "testing"

func TestTranscriptAppendOrder(t *testing.T) {
	tr := NewTranscript()
	tr.Append(Message{Sender: SenderUser, Text: "first"})
	tr.Append(Message{Sender: SenderBot, Text: "second"})
	tr.Append(Message{Sender: SenderUser, Text: "third"})

	got := tr.All()
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	want := []string{"first", "second", "third"}
	for i, text := range want {
		if got[i].Text != text {
			t.Errorf("message %d: expected %q, got %q", i, text, got[i].Text)
		}
	}
	if got[0].Sender != SenderUser || got[1].Sender != SenderBot {
		t.Error("senders not preserved in order")
	}
}

func TestTranscriptAllReturnsCopy(t *testing.T) {
	tr := NewTranscript()
	tr.Append(Message{Sender: SenderUser, Text: "original"})

	snapshot := tr.All()
	snapshot[0].Text = "mutated"

	if tr.All()[0].Text != "original" {
		t.Error("mutating the returned slice changed the transcript")
	}
}

func TestTranscriptLen(t *testing.T) {
	tr := NewTranscript()
	if tr.Len() != 0 {
		t.Fatalf("expected empty transcript, got %d", tr.Len())
	}
	tr.Append(Message{Sender: SenderUser, Text: "hello"})
	if tr.Len() != 1 {
		t.Fatalf("expected 1 message, got %d", tr.Len())
	}
}
