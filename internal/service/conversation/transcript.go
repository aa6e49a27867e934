package conversation

import "strings"

// Turn is one completed exchange.
type Turn struct {
	Question string
	Answer   string
}

// Transcript is the append-only conversation context of one session. It is
// not safe for concurrent use; the session owner serializes access.
type Transcript struct {
	userLabel      string
	assistantLabel string
	turns          []Turn
	text           strings.Builder
}

func NewTranscript(userLabel, assistantLabel string) *Transcript {
	return &Transcript{
		userLabel:      userLabel,
		assistantLabel: assistantLabel,
	}
}

// Append records a turn as "<user>: q\n<assistant>: a\n".
func (t *Transcript) Append(question, answer string) {
	t.turns = append(t.turns, Turn{Question: question, Answer: answer})

	t.text.WriteString(t.userLabel)
	t.text.WriteString(": ")
	t.text.WriteString(question)
	t.text.WriteString("\n")
	t.text.WriteString(t.assistantLabel)
	t.text.WriteString(": ")
	t.text.WriteString(answer)
	t.text.WriteString("\n")
}

// String returns the serialized context fed into the next prompt.
func (t *Transcript) String() string {
	return t.text.String()
}

func (t *Transcript) Len() int {
	return len(t.turns)
}
