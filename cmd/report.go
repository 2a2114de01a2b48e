/*
Copyright © 2026 The vgdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vgarchive/vgdb/pkg/schema"
	"github.com/vgarchive/vgdb/pkg/store"
)

// getReportCmd returns the report command.
func getReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report <title>",
		Short: "Show what is stored about a game",
		Long: `Report prints a stored game with its reception score, its
earliest release date, every release fact and the number of credits.

Examples:
  vgdb report Ico
  vgdb report "Super Mario Bros."`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReport,
	}

	return reportCmd
}

func runReport(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	title := strings.Join(args, " ")

	op, st, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	game, ok, err := st.FindGame(ctx, title)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !ok {
		gn.Warn("Game <em>%s</em> is not in the database", title)
		return nil
	}

	releases, err := st.GameReleases(ctx, game.ID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	credits, err := st.CreditCount(ctx, game.ID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	writeReport(os.Stdout, game, releases, credits)
	return nil
}

func writeReport(
	w io.Writer,
	g schema.Game,
	releases []store.ReleaseView,
	credits int,
) {
	fmt.Fprintf(w, "%s (id %d)\n", g.Title, g.ID)

	reception := "n/a"
	if g.Reception.Valid {
		reception = fmt.Sprintf("%.0f", g.Reception.Float64)
	}
	fmt.Fprintf(w, "  Reception:        %s\n", reception)

	earliest := "n/a"
	if g.EarliestReleaseDate.Valid {
		earliest = g.EarliestReleaseDate.Time.Format(time.DateOnly)
	}
	fmt.Fprintf(w, "  Earliest release: %s\n", earliest)
	fmt.Fprintf(w, "  Credits:          %d\n", credits)

	fmt.Fprintf(w, "  Releases:         %d\n", len(releases))
	if len(releases) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Date", "Region", "Platform"})
	for _, r := range releases {
		tw.AppendRow(table.Row{
			r.Date.Format(time.DateOnly), r.Region, r.Platform,
		})
	}
	fmt.Fprintln(w, tw.Render())
}
