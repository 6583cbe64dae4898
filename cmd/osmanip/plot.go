package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/osmanip/canvas"
	"github.com/lixenwraith/osmanip/terminal"
)

var plotFuncs = map[string]func(float64) float64{
	"sin":      math.Sin,
	"cos":      math.Cos,
	"tan":      math.Tan,
	"exp":      math.Exp,
	"log":      math.Log,
	"sqrt":     math.Sqrt,
	"square":   func(x float64) float64 { return x * x },
	"identity": func(x float64) float64 { return x },
}

func plotFuncNames() string {
	names := make([]string, 0, len(plotFuncs))
	for name := range plotFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

type plotOptions struct {
	fn      string
	width   int
	height  int
	offset  string
	scale   string
	char    string
	feature string
	axes    bool
	frame   string
	inline  bool
}

func newPlotCmd(a *app) *cobra.Command {
	o := &plotOptions{}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot a function on a canvas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlot(a, o, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.fn, "fn", "sin", "Function: "+plotFuncNames())
	f.IntVar(&o.width, "width", 0, "Grid width, 0 fits the terminal")
	f.IntVar(&o.height, "height", 0, "Grid height, 0 fits the terminal")
	f.StringVar(&o.offset, "offset", "-6.4,1.2", "Real coordinates of the top-left cell as x,y")
	f.StringVar(&o.scale, "scale", "0.2,-0.1", "Real distance per column and per row as x,y")
	f.StringVar(&o.char, "char", "*", "Plot character")
	f.StringVar(&o.feature, "feature", "bright-green", "Feature of plotted points")
	f.BoolVar(&o.axes, "axes", true, "Draw the x and y axes")
	f.StringVar(&o.frame, "frame", "lines", "Frame style: lines, ascii, none")
	f.BoolVar(&o.inline, "inline", false, "Draw at the cursor instead of clearing the screen")
	return cmd
}

func runPlot(a *app, o *plotOptions, out io.Writer) error {
	fn, ok := plotFuncs[o.fn]
	if !ok {
		return fmt.Errorf("unknown function %q, want one of %s", o.fn, plotFuncNames())
	}

	offX, offY, err := parsePair(o.offset)
	if err != nil {
		return fmt.Errorf("--offset: %w", err)
	}
	scaleX, scaleY, err := parsePair(o.scale)
	if err != nil {
		return fmt.Errorf("--scale: %w", err)
	}

	r, size := utf8.DecodeRuneInString(o.char)
	if size == 0 || size != len(o.char) {
		return fmt.Errorf("--char must be a single character, got %q", o.char)
	}

	frame := canvas.ParseFrameStyle(o.frame)
	width, height := gridSize(o.width, o.height, frame != canvas.FrameNone)

	p, err := canvas.NewPlot(width, height,
		canvas.WithRegistry(a.registry),
		canvas.WithFrame(frame, "faint"),
	)
	if err != nil {
		return err
	}
	p.SetOffset(offX, offY)
	if err := p.SetScale(scaleX, scaleY); err != nil {
		return fmt.Errorf("--scale: %w", err)
	}

	if o.axes {
		p.DrawAxes('·', "faint")
	}
	p.Draw(fn, r, o.feature)
	log.Printf("plot %s %dx%d offset (%g,%g) scale (%g,%g)", o.fn, width, height, offX, offY, scaleX, scaleY)

	if o.inline {
		if err := p.Refresh(out); err != nil {
			return err
		}
		_, err := io.WriteString(out, "\n")
		return err
	}

	rows := height
	if frame != canvas.FrameNone {
		rows += 2
	}
	buf, err := p.AppendRender([]byte(terminal.ClearScreen))
	if err != nil {
		return err
	}
	buf = terminal.AppendMoveTo(buf, 0, rows)
	_, err = out.Write(buf)
	return err
}

// gridSize resolves zero dimensions from the terminal size, leaving room for the frame and prompt
func gridSize(width, height int, framed bool) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}

	tw, th := 64, 22
	if terminal.IsTerminal(os.Stdout) {
		if w, h, err := terminal.Size(os.Stdout); err == nil {
			tw, th = w, h-1
		}
	}
	if framed {
		tw -= 2
		th -= 2
	}

	if width <= 0 {
		width = max(tw, 1)
	}
	if height <= 0 {
		height = max(th, 1)
	}
	return width, height
}

// parsePair parses "x,y" into two floats
func parsePair(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
