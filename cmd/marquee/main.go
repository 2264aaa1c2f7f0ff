package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/deck"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "marquee [deck]",
		Short: "Terminal slideshow of rotating slide carousels",
		Long: `marquee shows every widget of a deck file as a carousel that advances on a
timer and on demand: arrow keys, on-screen buttons, indicator dots and mouse
drags. The deck defaults to the one named in ~/.config/marquee/config.toml.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.DeckPath = args[0]
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/marquee/config.toml)")
	flags.StringVar(&opts.Theme, "theme", "", "color theme (Dracula, Slate)")
	flags.BoolVar(&opts.Watch, "watch", false, "reload the deck when the file changes")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file (default ~/.local/state/marquee/marquee.log)")

	root.AddCommand(newValidateCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <deck>",
		Short: "Parse a deck and print a summary of its widgets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			d, err := deck.Load(path)
			if err != nil {
				return err
			}
			printSummary(cmd, d)
			return nil
		},
	}
}

func printSummary(cmd *cobra.Command, d deck.Deck) {
	out := cmd.OutOrStdout()
	title := d.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(out, "%s: %d widgets, %d slides\n", title, len(d.Widgets), d.SlideCount())
	for i, w := range d.Widgets {
		s := w.Settings()
		id := w.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}
		autoplay := "off"
		if s.Autoplay.Enabled {
			autoplay = s.Autoplay.Delay.String()
		}
		fmt.Fprintf(out, "  %-12s slides=%d transition=%s autoplay=%s overlay=%s@%.2f fit=%s\n",
			id, len(w.Slides), s.Transition, autoplay, s.OverlayColor, s.OverlayOpacity, s.ImageFit)
	}
}
