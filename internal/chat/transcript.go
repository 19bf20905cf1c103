// Package chat holds the transcript store and send pipeline shared by the
// terminal widget: an append-only list of turns and a single-call HTTP
// client against the backend query endpoint.
package chat

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one chat turn. Immutable once appended.
type Message struct {
	Sender Sender
	Text   string
}

// Transcript is the ordered sequence of turns for one session. Append-only,
// in-memory, unbounded; it dies with the view that owns it.
type Transcript struct {
	messages []Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// All returns the turns oldest-first. The slice is a copy so callers
// cannot mutate history.
func (t *Transcript) All() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	return len(t.messages)
}
