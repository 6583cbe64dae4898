package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/osmanip/terminal"
)

// app holds global flag values and state shared by subcommands
type app struct {
	colorFlag    string
	debug        bool
	featuresPath string

	registry *terminal.Registry
	logFile  *os.File
}

func main() {
	// Panic Recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mOSMANIP CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	a := &app{}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "osmanip",
		Short:         "ANSI styling, cursor control, canvas plotting and output capture",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.colorFlag, "color", "auto", "Color mode: auto, truecolor, 256")
	pf.BoolVar(&a.debug, "debug", false, "Write debug log to "+logDir+"/"+logFileName)
	pf.StringVar(&a.featuresPath, "features", "", "TOML file with additional features and aliases")

	root.AddCommand(
		newPlotCmd(a),
		newCanvasCmd(a),
		newCaptureCmd(a),
		newFeaturesCmd(a),
	)
	return root
}

// init configures logging and builds the feature registry from global flags
func (a *app) init() error {
	a.logFile = setupLogging(a.debug)

	mode := terminal.ParseColorMode(a.colorFlag)
	a.registry = terminal.NewRegistry(mode)
	log.Printf("color mode %s", mode)

	if a.featuresPath != "" {
		if err := a.registry.LoadFile(a.featuresPath); err != nil {
			return err
		}
		log.Printf("loaded features from %s", a.featuresPath)
	}
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}
