package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fragmede/threadtree/internal/source"
)

func newFileCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "file [path|-]",
		Short: "Render a JSON or YAML comment forest",
		Long: "Render a comment forest read from a file, or from stdin when the path\n" +
			"is - or missing. Each comment needs author, time and text; id and\n" +
			"children are optional.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening input: %w", err)
				}
				defer f.Close()
				r = f
			}

			fmtOf := source.FormatForPath(path)
			if format != "" {
				fmtOf = source.Format(format)
			}
			forest, err := source.Decode(r, fmtOf)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			return a.show(cmd, page{name: path, comments: forest})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format (json|yaml); guessed from the extension by default")
	return cmd
}
