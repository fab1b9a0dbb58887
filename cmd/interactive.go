package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dstockto/partgen/models"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// noBellWriter drops the lone bell characters readline emits on every key
// that does not move the selection.
type noBellWriter struct {
	io.WriteCloser
}

func (w *noBellWriter) Write(b []byte) (int, error) {
	if len(b) == 1 && b[0] == readline.CharBell {
		return 0, nil
	}
	return w.WriteCloser.Write(b)
}

// NoBellStdout is the stdout handed to promptui.
var NoBellStdout = &noBellWriter{readline.Stdout}

// isInteractiveAllowed returns true when the user did not disable interaction
// via flag and when the process is attached to a TTY suitable for prompting.
func isInteractiveAllowed(nonInteractive bool) bool {
	if nonInteractive {
		return false
	}
	// Require stdin, stdout, and stderr to be terminals and TERM to be sane
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// selectPartInteractively shows the buildable parts. If the user cancels the
// prompt (Esc or Ctrl+C), canceled is true.
func selectPartInteractively(candidates []part) (part, bool, error) {
	items := make([]string, len(candidates))
	for i, pt := range candidates {
		items[i] = fmt.Sprintf("%-5s → %s", pt.Name, pt.File)
	}

	prompt := promptui.Select{
		Label: "Select the part to build (Esc to cancel)",
		Items: items,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "✔ {{ . | green }}",
		},
		Stdin:  os.Stdin,
		Stdout: NoBellStdout,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt || err == promptui.ErrAbort {
			return part{}, true, nil
		}
		return part{}, false, fmt.Errorf("part selection failed: %w", err)
	}
	return candidates[idx], false, nil
}

// selectSpoolInteractively shows a searchable list of spools and returns the
// chosen one. Prompt errors fall back to the numbered list.
func selectSpoolInteractively(candidates []models.Spool, term string) (models.Spool, bool, error) {
	items := make([]string, len(candidates))
	for i, s := range candidates {
		items[i] = s.String()
	}

	searcher := func(input string, index int) bool {
		needle := strings.ToLower(strings.TrimSpace(input))
		if needle == "" {
			return true
		}
		s := candidates[index]
		fields := []string{
			fmt.Sprintf("%d", s.Id),
			s.Filament.Vendor.Name,
			s.Filament.Name,
			s.Filament.Material,
			s.Location,
		}
		return strings.Contains(strings.ToLower(strings.Join(fields, " ")), needle)
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("Select the spool for '%s' (type to filter; Esc to cancel)", term),
		Items: items,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "✔ {{ . | green }}",
		},
		Size:              12,
		Searcher:          searcher,
		StartInSearchMode: true,
		Stdin:             os.Stdin,
		Stdout:            NoBellStdout,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt || err == promptui.ErrAbort {
			return models.Spool{}, true, nil
		}
		return selectSpoolSimple(os.Stdin, os.Stdout, candidates, term)
	}
	return candidates[idx], false, nil
}

// selectSpoolSimple provides a numbered list over plain text without cursor
// control. The user types a number or a spool id, or presses Enter to cancel.
func selectSpoolSimple(in io.Reader, out io.Writer, candidates []models.Spool, term string) (models.Spool, bool, error) {
	reader := bufio.NewReader(in)
	_, _ = fmt.Fprintf(out, "Multiple spools match '%s'; please choose one:\n", term)
	for i, s := range candidates {
		_, _ = fmt.Fprintf(out, "%2d) %s\n", i+1, s.String())
	}
	_, _ = fmt.Fprint(out, "Enter number to select, or press Enter to cancel: ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return models.Spool{}, true, nil
	}
	for idx := range candidates {
		if line == fmt.Sprintf("%d", idx+1) {
			return candidates[idx], false, nil
		}
	}
	for _, s := range candidates {
		if line == fmt.Sprintf("%d", s.Id) {
			return s, false, nil
		}
	}
	return models.Spool{}, true, fmt.Errorf("invalid selection: %q", line)
}
