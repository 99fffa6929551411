package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptConfirmer asks yes/no questions on the terminal. It implements
// service.Confirmer.
type PromptConfirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewPromptConfirmer creates a confirmer over the given streams.
func NewPromptConfirmer(r io.Reader, w io.Writer) *PromptConfirmer {
	return &PromptConfirmer{reader: bufio.NewReader(r), writer: w}
}

// Confirm prints the message and waits for a y/yes answer. Anything else,
// including a read error, declines.
func (p *PromptConfirmer) Confirm(message string) bool {
	fmt.Fprintf(p.writer, "%s [y/N]: ", WarningStyle.Render(message))

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// AutoConfirmer approves everything, for --yes flags and scripts.
type AutoConfirmer struct{}

// Confirm always returns true.
func (AutoConfirmer) Confirm(_ string) bool { return true }
