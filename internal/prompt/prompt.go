package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/telscan/internal/model"
)

const (
	referencePrompt = "Enter master phone number (or press Enter to finish): "
	urlPrompt       = "Enter the URL to scrape: "
	rule            = "---------------------------------"
)

// Prompter reads answers line by line from an input stream and writes
// prompts and feedback to an output stream.
type Prompter struct {
	reader *bufio.Reader
	output io.Writer
}

// New creates a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		output: out,
	}
}

// readLine prompts and reads one line without its line terminator.
// eof is true when the stream ended; line may still hold a final
// unterminated line in that case.
func (p *Prompter) readLine(prompt string) (line string, eof bool, err error) {
	fmt.Fprint(p.output, prompt)

	line, err = p.reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimRight(line, "\r\n"), true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), false, nil
}

// ReadReferences adds one reference number per line to set until an empty
// line or the end of input. Entries without digits and duplicates are
// reported and skipped. It returns the number of entries added.
func (p *Prompter) ReadReferences(set *model.ReferenceSet) (int, error) {
	fmt.Fprintln(p.output, "\n--- Master Phone Number Entry ---")
	fmt.Fprintln(p.output, "Enter the correct 'master' phone numbers for this website/company, one per line.")
	fmt.Fprintln(p.output, "Press Enter on an empty line to finish.")

	added := 0
	for {
		line, eof, err := p.readLine(referencePrompt)
		if err != nil {
			return added, err
		}

		if strings.TrimSpace(line) == "" {
			if eof {
				fmt.Fprintln(p.output, "\nEOF encountered while entering master numbers. Finishing entry.")
			}
			break
		}

		ok, err := p.addReference(set, line)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}

		if eof {
			fmt.Fprintln(p.output, "\nEOF encountered while entering master numbers. Finishing entry.")
			break
		}
	}

	if set.Len() > 0 {
		fmt.Fprintf(p.output, "Master phone numbers collected: %s\n", strings.Join(set.Values(), ", "))
	} else {
		fmt.Fprintln(p.output, "No master phone numbers were entered.")
	}
	fmt.Fprintln(p.output, rule)

	return added, nil
}

// AddReferences adds raw entries to set in order, reporting each added or
// skipped entry like interactive input. It returns the number added.
func (p *Prompter) AddReferences(set *model.ReferenceSet, raw ...string) (int, error) {
	added := 0
	for _, r := range raw {
		ok, err := p.addReference(set, r)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// addReference adds one entry and reports the outcome. Rejected entries
// are not errors.
func (p *Prompter) addReference(set *model.ReferenceSet, raw string) (bool, error) {
	canonical, err := set.Add(raw)
	switch {
	case err == nil:
		fmt.Fprintf(p.output, "Added master number: %s (Normalized: %s)\n", raw, canonical)
		return true, nil
	case errors.Is(err, model.ErrEmptyReference):
		fmt.Fprintf(p.output, "Skipped invalid input: %s\n", raw)
		return false, nil
	case errors.Is(err, model.ErrDuplicateReference):
		fmt.Fprintf(p.output, "Skipped duplicate master number: %s (Normalized: %s)\n", raw, canonical)
		return false, nil
	default:
		return false, err
	}
}

// ReadURL reads the URL to audit. An empty string means no URL was given,
// including when the input has already ended.
func (p *Prompter) ReadURL() (string, error) {
	line, eof, err := p.readLine(urlPrompt)
	if err != nil {
		return "", err
	}
	url := strings.TrimSpace(line)
	if url == "" && eof {
		fmt.Fprintln(p.output, "\nNo input provided (EOF). Proceeding without a URL.")
	}
	return url, nil
}
