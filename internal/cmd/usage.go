package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/dotcommander/cryptobot/internal/present"
)

func useLine(cmd *cobra.Command) string {
	appName := filepath.Base(os.Args[0])
	styles := present.StdoutStyles()

	if present.StdoutRenderer().ColorProfile() == termenv.TrueColor {
		appName = present.MakeGradientText(styles.AppName, appName)
	}
	if cmd.HasParent() {
		appName += " " + cmd.Name()
	}

	args := "[OPTIONS] [MESSAGE]"
	if cmd.HasParent() {
		args = "[OPTIONS]"
	}
	return fmt.Sprintf("%s %s", appName, styles.CliArgs.Render(args))
}

func usageFunc(cmd *cobra.Command) error {
	styles := present.StdoutStyles()
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Usage:\n  %s\n\n", useLine(cmd))

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w, "Commands:")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() {
				continue
			}
			fmt.Fprintf(w, "  %-14s %s\n", sub.Name(), styles.FlagDesc.Render(sub.Short))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Options:")
	visit := func(f *flag.Flag) {
		if f.Hidden {
			return
		}
		if f.Shorthand == "" {
			fmt.Fprintf(w, "  %-44s %s\n", styles.Flag.Render("--"+f.Name), f.Usage)
			return
		}
		fmt.Fprintf(w, "  %s%s %-40s %s\n",
			styles.Flag.Render("-"+f.Shorthand),
			styles.FlagComma,
			styles.Flag.Render("--"+f.Name),
			f.Usage,
		)
	}
	cmd.LocalFlags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)

	if cmd.HasExample() {
		fmt.Fprintf(w, "\nExample:\n  %s\n  %s\n",
			styles.Comment.Render("# "+cmd.Example),
			cheapHighlighting(styles, examples[cmd.Example]),
		)
	}
	return nil
}
