package secrets

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
)

// Prompter supplies interactively solicited values. Line reads echoed
// input; Secret reads without echo. The credential store never touches
// stdin directly, so tests can script every prompt.
type Prompter interface {
	Line(prompt string) (string, error)
	Secret(prompt string) (string, error)
}

// TerminalPrompter reads prompts from the controlling terminal. When
// stdin is not a terminal, Secret falls back to an echoed line read so
// piped input still works.
type TerminalPrompter struct {
	reader *bufio.Reader
}

// NewTerminalPrompter returns a prompter reading from stdin.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(os.Stdin)}
}

func (p *TerminalPrompter) Line(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *TerminalPrompter) Secret(prompt string) (string, error) {
	if !utils.IsTerminal() {
		return p.Line(prompt)
	}
	value, err := utils.ReadPassphrase(prompt)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// ScriptedPrompter replays a fixed sequence of answers. Intended for
// tests; answers are consumed in order regardless of prompt text.
type ScriptedPrompter struct {
	Answers []string

	// Prompts records every prompt shown, in order.
	Prompts []string
}

func (p *ScriptedPrompter) next(prompt string) (string, error) {
	p.Prompts = append(p.Prompts, prompt)
	if len(p.Answers) == 0 {
		return "", fmt.Errorf("no scripted answer for prompt %q", prompt)
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}

func (p *ScriptedPrompter) Line(prompt string) (string, error) {
	return p.next(prompt)
}

func (p *ScriptedPrompter) Secret(prompt string) (string, error) {
	return p.next(prompt)
}
