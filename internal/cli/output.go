package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fragmede/threadtree/internal/terminal"
	"github.com/fragmede/threadtree/internal/thread"
	"github.com/fragmede/threadtree/internal/ui"
)

// page is one screenful of output: an optional title block above a forest.
type page struct {
	name     string // pager status bar
	title    string
	url      string
	comments []thread.Comment
}

// show renders p to the command's output, through the pager when asked for
// and the output is a terminal.
func (a *app) show(cmd *cobra.Command, p page) error {
	out := cmd.OutOrStdout()
	f, _ := out.(*os.File)
	info, err := terminal.Detect(f, a.cfg.Color, a.cfg.Width)
	if err != nil {
		return err
	}

	if !a.cfg.Pager || !info.TTY {
		return writePage(out, p, info)
	}
	var buf bytes.Buffer
	if err := writePage(&buf, p, info); err != nil {
		return err
	}
	return ui.RunPager(p.name, buf.String(), cmd.InOrStdin(), out)
}

func writePage(w io.Writer, p page, info terminal.Info) error {
	styles := thread.NewStyles(w, info.Interactive)
	if p.title != "" {
		head := styles.Title(p.title)
		if p.url != "" {
			head += " (" + p.url + ")"
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", head); err != nil {
			return fmt.Errorf("writing title: %w", err)
		}
	}
	r := thread.NewRenderer(w, thread.WithWidth(info.Width), thread.WithStyles(styles))
	return r.Render(p.comments)
}
