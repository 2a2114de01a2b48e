package ioimport

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vgarchive/vgdb/internal/ioextract"
	"github.com/vgarchive/vgdb/pkg/facts"
	"github.com/vgarchive/vgdb/pkg/release"
	"github.com/vgarchive/vgdb/pkg/schema"
	"github.com/vgarchive/vgdb/pkg/store"
)

// Outcome summarizes the import of one page.
type Outcome struct {
	URL    string
	Title  string
	GameID int64
	Status store.Status

	Employees  int
	Developers int
	Publishers int
	Releases   int
	Credits    int

	// Fallbacks counts generic records used for missing data.
	Fallbacks int

	// Earliest is the earliest release date, zero when unknown.
	Earliest time.Time

	Warnings []string
}

// storedFact is a release fact with its stored id.
type storedFact struct {
	id int64
	release.Fact
}

func (o *Outcome) warn(msg string, args ...any) {
	o.Warnings = append(o.Warnings, msg)
	slog.Warn(msg, append([]any{"url", o.URL}, args...)...)
}

// importPage stores the facts of one page. A game that is already stored
// is only reported unless it lacks releases or credits.
func (imp *importer) importPage(ctx context.Context, page facts.Page) (Outcome, error) {
	res := Outcome{URL: page.URL, Title: page.Title}
	g := page.Game()
	if g.Title == "" {
		return res, ioextract.NoTitleError(page.URL)
	}

	stored, found, err := imp.store.FindGame(ctx, g.Title)
	if err != nil {
		return res, err
	}
	if found {
		return imp.resume(ctx, page, stored)
	}

	gr, err := imp.store.UpsertGame(ctx, &g)
	if err != nil {
		return res, err
	}
	res.GameID = gr.ID
	res.Status = gr.Status
	if gr.Status == store.StatusFound {
		// another worker stored the game first
		return imp.resume(ctx, page, g)
	}
	return imp.complete(ctx, page, g, res)
}

// resume finishes a stored game that has no releases or no credits, for
// example after a failed run. Complete games are reported.
func (imp *importer) resume(
	ctx context.Context,
	page facts.Page,
	g schema.Game,
) (Outcome, error) {
	res := Outcome{
		URL:    page.URL,
		Title:  g.Title,
		GameID: g.ID,
		Status: store.StatusFound,
	}
	rels, err := imp.store.GameReleases(ctx, g.ID)
	if err != nil {
		return res, err
	}
	n, err := imp.store.CreditCount(ctx, g.ID)
	if err != nil {
		return res, err
	}
	if len(rels) > 0 && n > 0 {
		return imp.report(ctx, page, g)
	}

	slog.Info("Completing partly imported game",
		"title", g.Title, "id", g.ID, "releases", len(rels), "credits", n)
	return imp.complete(ctx, page, g, res)
}

// complete stores participants and releases of a stored game and links
// them.
func (imp *importer) complete(
	ctx context.Context,
	page facts.Page,
	g schema.Game,
	res Outcome,
) (Outcome, error) {
	var err error
	ic := newImportContext(page)
	var c credits
	steps := []func(context.Context) error{
		func(ctx context.Context) (err error) {
			c.employees, err = imp.employees(ctx, page, &res)
			return err
		},
		func(ctx context.Context) (err error) {
			c.developers, err = imp.companies(ctx, ic, page.Developers,
				schema.RoleDeveloper, &res)
			res.Developers = len(c.developers)
			return err
		},
		func(ctx context.Context) (err error) {
			c.publishers, err = imp.companies(ctx, ic, page.Publishers,
				schema.RolePublisher, &res)
			res.Publishers = len(c.publishers)
			return err
		},
	}
	for _, step := range steps {
		if err = ctx.Err(); err != nil {
			return res, err
		}
		if err = step(ctx); err != nil {
			return res, err
		}
	}

	if err = ctx.Err(); err != nil {
		return res, err
	}
	releases, err := imp.releases(ctx, ic, page, g.ID, &res)
	if err != nil {
		return res, err
	}

	fs := make([]release.Fact, len(releases))
	ids := make([]int64, len(releases))
	for i, r := range releases {
		fs[i], ids[i] = r.Fact, r.id
	}
	if d, ok := release.Earliest(fs); ok {
		res.Earliest = d
		if err = imp.store.SetEarliestReleaseDate(ctx, g.ID, d); err != nil {
			return res, err
		}
	}

	if err = ctx.Err(); err != nil {
		return res, err
	}
	res.Credits, err = link(ctx, imp.store, ids, c)
	if err != nil {
		return res, err
	}

	slog.Info("Game imported",
		"title", g.Title,
		"id", g.ID,
		"employees", res.Employees,
		"releases", res.Releases,
		"credits", res.Credits,
		"fallbacks", res.Fallbacks,
	)
	return res, nil
}

// report describes a stored game without changing it.
func (imp *importer) report(
	ctx context.Context,
	page facts.Page,
	g schema.Game,
) (Outcome, error) {
	res := Outcome{
		URL:    page.URL,
		Title:  g.Title,
		GameID: g.ID,
		Status: store.StatusFound,
	}
	if g.EarliestReleaseDate.Valid {
		res.Earliest = g.EarliestReleaseDate.Time
	}

	rec := release.New(lookupPlatforms{store: imp.store}, imp.aliases)
	fs, err := rec.Reconcile(ctx, page.Release)
	if err != nil && !errors.Is(err, release.ErrUnknownLayout) {
		return res, err
	}
	res.Releases = len(fs)

	stored, err := imp.store.GameReleases(ctx, g.ID)
	if err != nil {
		return res, err
	}
	if len(fs) > len(stored) {
		res.warn("Page lists releases that are not stored",
			"title", g.Title, "page", len(fs), "stored", len(stored))
	}
	slog.Info("Game already stored", "title", g.Title, "id", g.ID)
	return res, nil
}

func (imp *importer) employees(
	ctx context.Context,
	page facts.Page,
	res *Outcome,
) ([]store.RoleID, error) {
	var ids []store.RoleID
	for _, e := range page.Employees {
		er, err := imp.store.UpsertEmployee(ctx, e.Name, e.Roles)
		if store.IsRequiredField(err) {
			slog.Error("Cannot store employee", "name", e.Name, "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, er.Roles...)
	}
	if len(ids) == 0 {
		res.warn("No employees, using generic employee")
		res.Fallbacks++
		var err error
		if ids, err = imp.fallbacks.employee(ctx); err != nil {
			return nil, err
		}
	}
	res.Employees = len(ids)
	return ids, nil
}

func (imp *importer) companies(
	ctx context.Context,
	ic *importContext,
	refs []facts.Ref,
	role string,
	res *Outcome,
) ([]int64, error) {
	var ids []int64
	seen := make(map[int64]struct{})
	for _, ref := range refs {
		id, err := imp.resolveCompany(ctx, ic, ref, role)
		if store.IsRequiredField(err) {
			slog.Error("Cannot store company", "name", ref.Name, "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		res.warn("No companies, using generic company", "role", role)
		res.Fallbacks++
		id, err := imp.fallbacks.company(ctx)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (imp *importer) releases(
	ctx context.Context,
	ic *importContext,
	page facts.Page,
	gameID int64,
	res *Outcome,
) ([]storedFact, error) {
	rec := release.New(platformResolver{imp: imp, ic: ic}, imp.aliases)
	fs, err := rec.Reconcile(ctx, page.Release)
	switch {
	case errors.Is(err, release.ErrUnknownLayout):
		if !page.Release.IsEmpty() {
			res.warn("Unknown release layout", "nodes", len(page.Release.Nodes))
		}
	case err != nil:
		return nil, err
	}

	var stored []storedFact
	for _, f := range fs {
		r := schema.GameRelease{
			GameID:      gameID,
			PlatformID:  f.PlatformID,
			Region:      f.Region,
			ReleaseDate: f.Date,
		}
		rr, err := imp.store.UpsertRelease(ctx, &r)
		if store.IsRequiredField(err) {
			slog.Error("Cannot store release", "platform", f.Platform, "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		stored = append(stored, storedFact{id: rr.ID, Fact: f})
	}

	if len(stored) == 0 {
		res.warn("No releases, using generic release")
		res.Fallbacks++
		sf, err := imp.fallbacks.release(ctx, gameID)
		if err != nil {
			return nil, err
		}
		stored = append(stored, sf)
	}
	res.Releases = len(stored)
	return stored, nil
}
