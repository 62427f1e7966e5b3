package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/session"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	text, err := c.readInput(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	style, err := contactx.ParseDetailStyle(c.Style)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", contactx.ErrorMessage(err))
		return err
	}

	ctrl := &session.Controller{
		Extractor: deps.Extractor,
		Clipboard: deps.Clipboard,
		Renderer:  deps.Renderer,
		Logger:    deps.logger(),
	}
	ctrl.SetInput(text)
	ctrl.SelectStyle(style)

	if !ctrl.Extract(deps.Ctx) {
		fmt.Fprintln(deps.Stderr, "error: no input text")
		return contactx.Errorf(contactx.EINVALID, "no input text")
	}

	v := ctrl.Snapshot()
	if v.Error != "" {
		fmt.Fprintf(deps.Stderr, "error: %s\n", v.Error)
		return contactx.Errorf(v.ErrorCode, "%s", v.Error)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(contactx.ExtractionResult{Contacts: v.Contacts}); err != nil {
			return err
		}
	} else if err := c.print(deps, v); err != nil {
		return err
	}

	if c.Copy != "" && c.Copy != "none" {
		target, err := session.ParseTarget(c.Copy)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", contactx.ErrorMessage(err))
			return err
		}
		if ctrl.Copy(target) {
			fmt.Fprintf(deps.Stderr, "Copied %s to clipboard.\n", target)
		} else {
			fmt.Fprintf(deps.Stderr, "warning: could not copy %s to clipboard\n", target)
		}
	}
	return nil
}

func (c *ExtractCmd) print(deps *Dependencies, v session.View) error {
	details := v.Details
	switch {
	case c.Baseline:
		details = v.DetailLines
	case c.Markdown:
		if deps.Converter == nil || v.DetailsHTML == "" {
			break
		}
		md, err := deps.Converter.Convert(v.DetailsHTML)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", contactx.ErrorMessage(err))
			return err
		}
		details = md
	}

	fmt.Fprintln(deps.Stdout, "Recipients:")
	fmt.Fprintln(deps.Stdout, v.Recipients)
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, "Details:")
	fmt.Fprintln(deps.Stdout, details)
	return nil
}

func (c *ExtractCmd) readInput(stdin io.Reader) (string, error) {
	if c.File != "" && c.File != "-" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", c.File, err)
		}
		return string(data), nil
	}
	if stdin == nil {
		return "", contactx.Errorf(contactx.EINVALID, "no input text")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
