// Package snake holds the interactive prompts behind commands that would
// otherwise need more arguments.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question. Anything but an explicit yes is a no.
func Confirm(in io.Reader, out io.Writer, label string) (bool, error) {
	validate := func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} [y/N]: ",
		Valid:   "{{ . | green }} [y/N]: ",
		Invalid: "{{ . | red }} [y/N]: ",
		Success: "{{ . | bold }}: ",
	}

	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(in),
		Stdout:    nopCloser{out},
	}

	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("snake: prompt failed: %w", err)
	}
	yes, _ := ParseBool(result)
	return yes, nil
}

// PromptString asks for free text. def is used when the answer is empty.
func PromptString(in io.Reader, out io.Writer, label, def string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Stdin:     io.NopCloser(in),
		Stdout:    nopCloser{out},
	}
	result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("snake: prompt failed: %w", err)
	}
	if result == "" {
		result = def
	}
	return result, nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
