package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/osmanip/redirect"
)

type captureOptions struct {
	file   string
	strip  bool
	stderr bool
}

func newCaptureCmd(a *app) *cobra.Command {
	o := &captureOptions{}
	cmd := &cobra.Command{
		Use:   "capture [flags] -- <text>...",
		Short: "Write text lines to standard output or error while it is captured to a file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCapture(a, o, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.file, "file", redirect.DefaultFilename, "Capture file")
	f.BoolVar(&o.strip, "strip", false, "Remove escape sequences before writing the file")
	f.BoolVar(&o.stderr, "stderr", false, "Write and capture standard error instead of standard output")
	return cmd
}

func runCapture(a *app, o *captureOptions, lines []string) error {
	var opts []redirect.Option
	if o.strip {
		opts = append(opts, redirect.WithStripEscapes())
	}
	stream := redirect.Stdout
	if o.stderr {
		stream = redirect.Stderr
	}
	c := redirect.New(stream, o.file, opts...)

	err := c.Run(func() error {
		for i, line := range lines {
			// Alternate features so --strip has something to remove
			feature := "bold"
			if i%2 == 1 {
				feature = "faint"
			}
			s, err := a.registry.Format(line, feature)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(stream, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	_, err = redirect.Printf("captured %d lines to %s\n", len(lines), c.Filename())
	return err
}
