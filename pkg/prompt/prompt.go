// Package prompt implements the terminal prompter for interactive
// mode. One question at a time; processing of the current file is
// suspended until the user answers.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/core"
	"github.com/logsweep/logsweep/pkg/policy"
)

// TerminalPrompter asks about occurrences over a reader/writer pair
type TerminalPrompter struct {
	in      *bufio.Reader
	out     io.Writer
	noColor bool
}

// NewTerminalPrompter creates a prompter on stdin/stdout
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

// WithInput sets a custom input reader
func (p *TerminalPrompter) WithInput(r io.Reader) *TerminalPrompter {
	p.in = bufio.NewReader(r)
	return p
}

// WithOutput sets a custom output writer
func (p *TerminalPrompter) WithOutput(w io.Writer) *TerminalPrompter {
	p.out = w
	return p
}

// WithNoColor disables colored output
func (p *TerminalPrompter) WithNoColor(v bool) *TerminalPrompter {
	p.noColor = v
	if v {
		color.NoColor = true
	}
	return p
}

// Ask presents the occurrence and collects one choice, re-prompting
// on invalid input until the reader is exhausted.
func (p *TerminalPrompter) Ask(occ *core.Occurrence) policy.Choice {
	p.printOccurrence(occ)

	for {
		fmt.Fprint(p.out, "  [d]elete  [k]eep  convert-[i]nfo  convert-[e]rror  [s]kip similar  [q]uit file: ")
		answer, err := p.readAnswer()
		if err != nil {
			return policy.ChoiceInvalid
		}

		switch answer {
		case "d", "delete":
			return policy.ChoiceDelete
		case "k", "keep", "":
			return policy.ChoiceKeep
		case "i", "info":
			return policy.ChoiceConvertInfo
		case "e", "error":
			return policy.ChoiceConvertError
		case "s", "skip":
			return policy.ChoiceSkip
		case "q", "quit":
			return policy.ChoiceQuit
		default:
			fmt.Fprintf(p.out, "  Unrecognized choice %q\n", answer)
		}
	}
}

// ConfirmCommentRemoval is the lightweight yes/no for commented-out
// occurrences; the default answer is yes.
func (p *TerminalPrompter) ConfirmCommentRemoval(occ *core.Occurrence) bool {
	yellow := color.New(color.FgYellow)
	fmt.Fprintln(p.out)
	yellow.Fprintf(p.out, "%s commented-out %s\n", occ.Location(), occ.Token)
	fmt.Fprintf(p.out, "  %s\n", strings.TrimSpace(occ.RawText))

	for {
		fmt.Fprint(p.out, "  Remove this comment? [Y/n]: ")
		answer, err := p.readAnswer()
		if err != nil {
			return false
		}
		switch answer {
		case "y", "yes", "":
			return true
		case "n", "no":
			return false
		default:
			fmt.Fprintf(p.out, "  Unrecognized choice %q\n", answer)
		}
	}
}

func (p *TerminalPrompter) readAnswer() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

func (p *TerminalPrompter) printOccurrence(occ *core.Occurrence) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(p.out)
	cyan.Fprintf(p.out, "%s\n", occ.Location())
	fmt.Fprintf(p.out, "  context: %s", occ.Context())
	if occ.Risk > core.RiskNone {
		riskColor(occ.Risk).Fprintf(p.out, "  risk: %s (%s)", occ.Risk.Label(), strings.Join(occ.RiskMatches, ", "))
	}
	fmt.Fprintln(p.out)

	// Window lines, the occurrence line marked and masked
	for i, line := range occ.Window {
		lineNum := occ.WindowStart + i
		marker := "   "
		text := line
		if lineNum == occ.Line {
			marker = " > "
			text = analyze.MaskSecrets(line)
		}
		fmt.Fprintf(p.out, "%s%4d | %s\n", marker, lineNum, text)
	}
}

func riskColor(r core.Risk) *color.Color {
	switch r {
	case core.RiskHigh:
		return color.New(color.FgRed, color.Bold)
	case core.RiskMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}
