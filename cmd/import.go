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
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
	"github.com/vgarchive/vgdb/internal/iocache"
	"github.com/vgarchive/vgdb/internal/iodb"
	"github.com/vgarchive/vgdb/internal/iofetch"
	"github.com/vgarchive/vgdb/internal/iofs"
	"github.com/vgarchive/vgdb/internal/ioimport"
	"github.com/vgarchive/vgdb/internal/iostore"
	"github.com/vgarchive/vgdb/pkg/config"
	"github.com/vgarchive/vgdb/pkg/db"
	"github.com/vgarchive/vgdb/pkg/store"
	"github.com/vgarchive/vgdb/pkg/vgdb"
)

type importFlags struct {
	file    string
	noCache bool
	jobs    int
}

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var flags importFlags

	importCmd := &cobra.Command{
		Use:   "import [url...]",
		Short: "Import video game pages into the database",
		Long: `Import downloads encyclopedia articles about video games and
stores their facts.

For every page this command:
  1. Downloads the article (or reads it from the local page cache)
  2. Extracts the title, reception score, credits and release dates
  3. Resolves companies and platforms, following their links when
     they are not in the database yet
  4. Stores games, releases and credits without creating duplicates

Pages are given as arguments and/or in a file with one URL per line.
Empty lines and lines starting with '#' are ignored.

Examples:
  vgdb import https://en.wikipedia.org/wiki/Ico
  vgdb import -f games.txt
  vgdb import -f games.txt --jobs 4 --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, flags)
		},
	}

	importCmd.Flags().StringVarP(&flags.file, "file", "f", "",
		"file with page URLs, one per line")
	importCmd.Flags().BoolVar(&flags.noCache, "no-cache", false,
		"download every page even if it is in the page cache")
	importCmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0,
		"number of pages imported concurrently")

	return importCmd
}

func runImport(cmd *cobra.Command, args []string, flags importFlags) error {
	urls, err := importURLs(args, flags.file)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var flagOpts []config.Option
	if flags.noCache {
		flagOpts = append(flagOpts, config.OptImportUseCache(false))
	}
	if cmd.Flags().Changed("jobs") {
		flagOpts = append(flagOpts, config.OptJobsNumber(flags.jobs))
	}
	cfg.Update(flagOpts)

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	op, st, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	f := iofetch.New(cfg.Import)
	if cfg.Import.UseCache {
		cache, err := iocache.Open(config.PageCachePath(cfg.HomeDir))
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		defer cache.Close()
		f = iocache.NewFetcher(cache, f)
	}

	imp, err := ioimport.New(cfg, st, f,
		ioimport.OptProgress(cfg.Log.Destination != "stderr"),
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Importing <em>%s</em> pages with %d job(s)",
		humanize.Comma(int64(len(urls))), cfg.JobsNumber)

	summary, err := imp.Import(ctx, urls)
	printSummary(summary)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

// openStore connects to the database and makes sure vgdb tables exist.
func openStore(ctx context.Context) (db.Operator, store.Store, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, nil, err
	}

	ok, err := op.TableExists(ctx, "games")
	if err == nil && !ok {
		err = iodb.EmptyDatabaseError(cfg.Database.Host, cfg.Database.Database)
	}
	if err != nil {
		op.Close()
		return nil, nil, err
	}

	st, err := iostore.New(op)
	if err != nil {
		op.Close()
		return nil, nil, err
	}
	return op, st, nil
}

// importURLs joins URLs from the list file and from arguments.
func importURLs(args []string, file string) ([]string, error) {
	var res []string
	if file != "" {
		urls, err := iofs.ReadURLList(file)
		if err != nil {
			return nil, err
		}
		res = append(res, urls...)
	}
	res = append(res, args...)
	if len(res) == 0 {
		return nil, iofs.NoURLsError()
	}
	return res, nil
}

func printSummary(s vgdb.Summary) {
	gn.Info("Run <em>%s</em> finished in %s", s.RunID,
		gnfmt.TimeString(s.Duration.Seconds()))
	gn.Info("Pages: %s, new games: %s, known games: %s",
		humanize.Comma(int64(s.Pages)),
		humanize.Comma(int64(s.Inserted)),
		humanize.Comma(int64(s.Found)),
	)
	if s.Skipped > 0 || s.FetchErrors > 0 {
		gn.Warn("Skipped pages: %s, failed downloads: %s",
			humanize.Comma(int64(s.Skipped)),
			humanize.Comma(int64(s.FetchErrors)),
		)
	}
	if s.Fallbacks > 0 {
		gn.Info("Generic records used: %s", humanize.Comma(int64(s.Fallbacks)))
	}
}
