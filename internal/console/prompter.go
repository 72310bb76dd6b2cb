package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// ErrInputClosed is returned once the operator's input is exhausted.
var ErrInputClosed = errors.New("input closed")

// Prompter asks questions on out and reads one line answers from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Line prints prompt and returns the next line of input without its newline.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return p.in.Text(), nil
}

func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Name re-prompts until ValidateName accepts the answer.
func (p *Prompter) Name(field, prompt string) (string, error) {
	return ask(p, prompt, func(s string) (string, error) { return ValidateName(field, s) })
}

// PositiveInt re-prompts until ValidatePositiveInt accepts the answer.
func (p *Prompter) PositiveInt(field, prompt string) (int, error) {
	return ask(p, prompt, func(s string) (int, error) { return ValidatePositiveInt(field, s) })
}

// NonNegativeDecimal re-prompts until ValidateNonNegativeDecimal accepts the answer.
func (p *Prompter) NonNegativeDecimal(field, prompt string) (decimal.Decimal, error) {
	return ask(p, prompt, func(s string) (decimal.Decimal, error) { return ValidateNonNegativeDecimal(field, s) })
}

func ask[T any](p *Prompter, prompt string, validate func(string) (T, error)) (T, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := validate(line)
		if err == nil {
			return v, nil
		}
		p.Printf("%s. Please try again.\n", err)
	}
}
