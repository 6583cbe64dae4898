package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/osmanip/canvas"
	"github.com/lixenwraith/osmanip/terminal"
)

type canvasOptions struct {
	width  int
	height int
	frames int
	delay  time.Duration
	frame  string
}

func newCanvasCmd(a *app) *cobra.Command {
	o := &canvasOptions{}
	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Animate a small canvas in place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCanvas(a, o, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.width, "width", 40, "Canvas width")
	f.IntVar(&o.height, "height", 10, "Canvas height")
	f.IntVar(&o.frames, "frames", 40, "Number of frames")
	f.DurationVar(&o.delay, "delay", 80*time.Millisecond, "Delay between frames")
	f.StringVar(&o.frame, "frame", "lines", "Frame style: lines, ascii, none")
	return cmd
}

func runCanvas(a *app, o *canvasOptions, out io.Writer) error {
	c, err := canvas.New(o.width, o.height,
		canvas.WithRegistry(a.registry),
		canvas.WithFrame(canvas.ParseFrameStyle(o.frame), "bright-black"),
	)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, terminal.HideCursor); err != nil {
		return err
	}
	defer io.WriteString(out, terminal.ShowCursor)

	const label = "osmanip"
	for i := 0; i < o.frames; i++ {
		drawCanvasFrame(c, i, label)
		if err := c.Refresh(out); err != nil {
			return err
		}
		if o.delay > 0 && i < o.frames-1 {
			time.Sleep(o.delay)
		}
	}
	caption, err := c.Registry().Format(fmt.Sprintf("%d frames", o.frames), "faint")
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, "\r\n"+caption+"\r\n")
	return err
}

// drawCanvasFrame draws frame i: a bouncing label over a sweeping line and a fixed box
func drawCanvasFrame(c *canvas.Canvas, i int, label string) {
	w, h := c.Size()
	c.Clear()

	c.Rect(0, 0, w, h, '.', "blue")

	sweep := i % w
	c.Line(sweep, 1, w-1-sweep, h-2, '#', "red,bold")

	span := max(w-len(label), 1)
	x := i % (2 * span)
	if x >= span {
		x = 2*span - x
	}
	c.Text(x, h/2, label, "bright-yellow,underlined")
}
