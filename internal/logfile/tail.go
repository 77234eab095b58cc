package logfile

// tailBuffer keeps the last max lines pushed into it.
type tailBuffer struct {
	max   int
	lines []string
	next  int // oldest entry once the buffer is full
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) push(line string) {
	if t.max <= 0 {
		return
	}
	if len(t.lines) < t.max {
		t.lines = append(t.lines, line)
		return
	}
	t.lines[t.next] = line
	t.next = (t.next + 1) % t.max
}

// ordered returns the buffered lines oldest first.
func (t *tailBuffer) ordered() []string {
	out := make([]string, 0, len(t.lines))
	out = append(out, t.lines[t.next:]...)
	return append(out, t.lines[:t.next]...)
}
