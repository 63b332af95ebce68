package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/shravanasati/preview/middleware"
	"github.com/shravanasati/preview/server"
)

const defaultAddr = "127.0.0.1:8000"

type options struct {
	addr    string
	color   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "preview [dir]",
		Short: "Serve a directory of built static files for local preview",
		Long: `preview serves a directory over HTTP. Requests for /about fall back to
about.html, and directories are served through their index.html.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(opts, dir, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.addr, "addr", "a", defaultAddr, "address to listen on (host:port)")
	flags.StringVar(&opts.color, "color", "auto", "colorize output: auto, always or never")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every request")
	return cmd
}

// useColor resolves the --color flag. "auto" colours only when out is a terminal.
func useColor(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color value %q: want auto, always or never", mode)
	}
}

func buildServer(opts *options, dir string, out io.Writer) (*server.Server, error) {
	color, err := useColor(opts.color, out)
	if err != nil {
		return nil, err
	}

	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		log.Printf("warning: %s is not a directory, every request will 404", dir)
	}

	srv, err := server.NewWithConfig(server.Config{
		BindAddress:   opts.addr,
		RootDirectory: dir,
		ColorOutput:   color,
		Stdout:        out,
	})
	if err != nil {
		return nil, err
	}

	if opts.verbose {
		logger := log.Default()
		if color {
			srv.Use(middleware.LoggingColored(logger))
		} else {
			srv.Use(middleware.Logging(logger))
		}
	}
	return srv, nil
}

func run(opts *options, dir string, out io.Writer) error {
	srv, err := buildServer(opts, dir, out)
	if err != nil {
		return err
	}
	return srv.Run()
}
