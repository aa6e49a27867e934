// Package reveal implements the typing effect used by the UI: a complete
// reply is shown one character per tick. It owns no timer; the caller feeds
// it ticks and stops ticking once Tick reports done.
package reveal

type State int

const (
	Idle State = iota
	Revealing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Revealing:
		return "revealing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

type Reveal struct {
	runes []rune
	index int
	state State
}

func New() *Reveal {
	return &Reveal{}
}

// Start begins revealing text from its first character. An empty text is
// done immediately.
func (r *Reveal) Start(text string) {
	r.runes = []rune(text)
	r.index = 0
	r.state = Revealing
	if len(r.runes) == 0 {
		r.state = Done
	}
}

// Tick reveals the next character and returns the visible prefix. done is
// true once the whole text is visible; ticks after that change nothing.
func (r *Reveal) Tick() (visible string, done bool) {
	if r.state != Revealing {
		return r.Visible(), r.state == Done
	}

	r.index++
	if r.index >= len(r.runes) {
		r.index = len(r.runes)
		r.state = Done
	}
	return r.Visible(), r.state == Done
}

// Finish jumps to the end of the text.
func (r *Reveal) Finish() string {
	if r.state == Revealing {
		r.index = len(r.runes)
		r.state = Done
	}
	return r.Visible()
}

func (r *Reveal) Visible() string {
	return string(r.runes[:r.index])
}

func (r *Reveal) Text() string {
	return string(r.runes)
}

func (r *Reveal) State() State {
	return r.state
}
