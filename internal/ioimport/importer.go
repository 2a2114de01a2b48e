// Package ioimport merges facts of game articles into the database.
//
// Every page is fetched, extracted and imported on its own. A game seen
// for the first time gets its employees, developers, publishers and
// release facts stored and linked; where the page lacks any of them a
// generic record stands in, so every stored game satisfies referential
// constraints. A game that is already stored is only reported, which
// makes repeated runs idempotent.
package ioimport

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/vgarchive/vgdb/internal/ioextract"
	"github.com/vgarchive/vgdb/internal/iofetch"
	"github.com/vgarchive/vgdb/pkg/config"
	"github.com/vgarchive/vgdb/pkg/errcode"
	"github.com/vgarchive/vgdb/pkg/platforms"
	"github.com/vgarchive/vgdb/pkg/store"
	"github.com/vgarchive/vgdb/pkg/vgdb"
	"golang.org/x/sync/errgroup"
)

type importer struct {
	store     store.Store
	fetcher   iofetch.Fetcher
	extractor *ioextract.Extractor
	aliases   *platforms.Aliases
	details   details
	fallbacks *fallbacks

	jobs          int
	maxHTTPErrors int
	progress      bool
}

// Option configures the importer.
type Option func(*importer)

// OptProgress shows a progress bar over pages.
func OptProgress(b bool) Option {
	return func(imp *importer) {
		imp.progress = b
	}
}

// OptAliases replaces the platform alias table.
func OptAliases(a *platforms.Aliases) Option {
	return func(imp *importer) {
		if a != nil {
			imp.aliases = a
		}
	}
}

// New creates an Importer that reads pages with f and stores facts in st.
func New(
	cfg *config.Config,
	st store.Store,
	f iofetch.Fetcher,
	opts ...Option,
) (vgdb.Importer, error) {
	return newImporter(cfg, st, f, opts...)
}

func newImporter(
	cfg *config.Config,
	st store.Store,
	f iofetch.Fetcher,
	opts ...Option,
) (*importer, error) {
	ex, err := ioextract.New(cfg.Import.BaseURL)
	if err != nil {
		return nil, err
	}

	aliases := platforms.New()
	if cfg.Import.AliasesFile != "" {
		if aliases, err = platforms.Load(cfg.Import.AliasesFile); err != nil {
			return nil, err
		}
	}

	res := &importer{
		store:         st,
		fetcher:       f,
		extractor:     ex,
		aliases:       aliases,
		details:       details{fetcher: f, extractor: ex},
		fallbacks:     newFallbacks(st),
		jobs:          max(cfg.JobsNumber, 1),
		maxHTTPErrors: max(cfg.Import.MaxHTTPErrors, 1),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res, nil
}

// Import fetches and imports pages concurrently. It stops on the first
// store error, on cancellation or after too many failed downloads.
func (imp *importer) Import(
	ctx context.Context,
	urls []string,
) (vgdb.Summary, error) {
	start := time.Now()
	res := vgdb.Summary{RunID: uuid.NewString(), Pages: len(urls)}
	log := slog.With("run", res.RunID)
	log.Info("Import started", "pages", len(urls), "jobs", imp.jobs)

	if _, err := imp.fallbacks.company(ctx); err != nil {
		return res, err
	}

	var bar *pb.ProgressBar
	if imp.progress && len(urls) > 0 {
		bar = pb.Full.Start(len(urls))
		bar.Set("prefix", "Importing pages: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imp.jobs)

	for _, u := range urls {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if bar != nil {
				defer bar.Increment()
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := imp.importURL(gctx, u)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				res.Fallbacks += out.Fallbacks
				switch out.Status {
				case store.StatusInserted:
					res.Inserted++
				case store.StatusFound:
					res.Found++
				}
			case hasCode(err, errcode.FetchError, errcode.FetchStatusError):
				res.FetchErrors++
				log.Error("Cannot download page", "url", u, "error", err)
				if res.FetchErrors >= imp.maxHTTPErrors {
					return TooManyHTTPErrorsError(res.FetchErrors)
				}
			case hasCode(err, errcode.ExtractNoTitleError, errcode.ExtractParseError):
				res.Skipped++
				log.Warn("Skipping page", "url", u, "error", err)
			default:
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	res.Duration = time.Since(start)
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = CancelledError(ctxErr)
	}

	log.Info("Import finished",
		"pages", res.Pages,
		"inserted", res.Inserted,
		"found", res.Found,
		"skipped", res.Skipped,
		"fetch_errors", res.FetchErrors,
		"fallbacks", res.Fallbacks,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, err
}

// importURL downloads, extracts and imports one page.
func (imp *importer) importURL(ctx context.Context, url string) (Outcome, error) {
	body, err := imp.fetcher.Get(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{URL: url}, ctx.Err()
		}
		return Outcome{URL: url}, err
	}

	page, err := imp.extractor.Page(url, body)
	if err != nil {
		return Outcome{URL: url}, err
	}
	return imp.importPage(ctx, page)
}

func hasCode(err error, codes ...gn.ErrorCode) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && slices.Contains(codes, gnErr.Code)
}
