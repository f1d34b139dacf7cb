package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultRenderer draws with ANSI escapes. Output is buffered and written
// once per frame.
type DefaultRenderer struct {
	out         io.Writer
	buffer      strings.Builder
	decorations []*decoration
}

type decoration struct {
	Row, Col int
	Content  string
	Frames   int // remaining frames until removed
}

func New(out io.Writer) *DefaultRenderer {
	return &DefaultRenderer{out: out}
}

func NewTerminal() *DefaultRenderer {
	return New(os.Stdout)
}

func (r *DefaultRenderer) Init() error {
	_, err := fmt.Fprintf(r.out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[2J",     // Clear the screen
	)
	return err
}

func (r *DefaultRenderer) Deinit() error {
	_, err := fmt.Fprintf(r.out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	return err
}

func (r *DefaultRenderer) AddDecoration(row, col int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		Row:     row,
		Col:     col,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := r.decorations[:0]
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Row, d.Col, strings.Repeat(" ", len([]rune(stripEscapes(d.Content)))))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	clear(r.decorations[len(nd):])
	r.decorations = nd
}

// RenderLoop calls render once per period until it returns false
func (r *DefaultRenderer) RenderLoop(period time.Duration, render func() bool) {
	for cont := true; cont; {
		deadline := time.Now().Add(period)

		cont = render()

		r.tickDecorations()
		r.Flush()

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) move(row, col int) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(col))
	r.buffer.WriteString("H")
}

func (r *DefaultRenderer) Fill(row, col int, message string) {
	r.move(row, col)
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, col int, c color.RGBA, message string) {
	r.move(row, col)
	r.buffer.WriteString("\033[38;2;")
	r.buffer.WriteString(strconv.Itoa(int(c.R)))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(int(c.G)))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(int(c.B)))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) Flush() error {
	_, err := io.WriteString(r.out, r.buffer.String())
	r.buffer.Reset()
	return err
}

// stripEscapes drops CSI sequences, leaving the printed text
func stripEscapes(s string) string {
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\033':
			inEscape = true
		case inEscape:
			if s[i] >= '@' && s[i] <= '~' && s[i] != '[' {
				inEscape = false
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
