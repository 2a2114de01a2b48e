package ioimport

import (
	"context"
	"log/slog"

	"github.com/vgarchive/vgdb/internal/iofetch"
	"github.com/vgarchive/vgdb/internal/ioextract"
	"github.com/vgarchive/vgdb/pkg/facts"
	"github.com/vgarchive/vgdb/pkg/schema"
	"github.com/vgarchive/vgdb/pkg/store"
)

// details downloads and reads company and platform articles. Failures
// are logged and the entity is stored with its name only. A cancelled
// context is returned as an error.
type details struct {
	fetcher   iofetch.Fetcher
	extractor *ioextract.Extractor
}

func (d details) company(
	ctx context.Context,
	url string,
) (facts.CompanyFacts, bool, error) {
	if url == "" || d.fetcher == nil {
		return facts.CompanyFacts{}, false, nil
	}
	body, err := d.fetcher.Get(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return facts.CompanyFacts{}, false, ctx.Err()
		}
		slog.Warn("Cannot download company page", "url", url, "error", err)
		return facts.CompanyFacts{}, false, nil
	}
	res, err := d.extractor.Company(url, body)
	if err != nil {
		slog.Warn("Cannot read company page", "url", url, "error", err)
		return facts.CompanyFacts{}, false, nil
	}
	return res, true, nil
}

func (d details) platform(
	ctx context.Context,
	url string,
) (facts.PlatformFacts, bool, error) {
	if url == "" || d.fetcher == nil {
		return facts.PlatformFacts{}, false, nil
	}
	body, err := d.fetcher.Get(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return facts.PlatformFacts{}, false, ctx.Err()
		}
		slog.Warn("Cannot download platform page", "url", url, "error", err)
		return facts.PlatformFacts{}, false, nil
	}
	res, err := d.extractor.Platform(url, body)
	if err != nil {
		slog.Warn("Cannot read platform page", "url", url, "error", err)
		return facts.PlatformFacts{}, false, nil
	}
	return res, true, nil
}

// resolveCompany returns the id of a company tagged with role. Unknown
// companies are stored with the facts of their article.
func (imp *importer) resolveCompany(
	ctx context.Context,
	ic *importContext,
	ref facts.Ref,
	roles ...string,
) (int64, error) {
	name := facts.Clean(ref.Name)
	c, found, err := imp.store.FindCompany(ctx, name)
	if err != nil {
		return 0, err
	}
	if !found {
		c = schema.Company{Name: name}
		cf, ok, err := imp.details.company(ctx, ic.link(ref))
		if err != nil {
			return 0, err
		}
		if ok {
			c = cf.Row()
			c.Name = name
		}
	}
	res, err := imp.store.UpsertCompany(ctx, &c, roles...)
	if err != nil {
		return 0, err
	}
	return res.ID, nil
}

// platformResolver stores platforms met in a release listing.
type platformResolver struct {
	imp *importer
	ic  *importContext
}

// ResolvePlatform returns the id of a platform, storing it with the
// facts of its article when it is new. A platform without a known
// developer belongs to the generic company.
func (pr platformResolver) ResolvePlatform(
	ctx context.Context,
	ref facts.Ref,
) (int64, error) {
	if id, ok := pr.ic.platforms[ref.Name]; ok {
		return id, nil
	}

	imp := pr.imp
	p, found, err := imp.store.FindPlatform(ctx, ref.Name)
	if err != nil {
		return 0, err
	}
	if found {
		pr.ic.platforms[ref.Name] = p.ID
		return p.ID, nil
	}

	pf, ok, err := imp.details.platform(ctx, pr.ic.link(ref))
	if err != nil {
		return 0, err
	}
	var companyID int64
	if ok && pf.Developer.Name != "" {
		companyID, err = imp.resolveCompany(ctx, pr.ic, pf.Developer)
		if err != nil && !store.IsRequiredField(err) {
			return 0, err
		}
	}
	if companyID == 0 {
		if companyID, err = imp.fallbacks.company(ctx); err != nil {
			return 0, err
		}
	}

	p = pf.Row(companyID)
	p.Name = ref.Name
	res, err := imp.store.UpsertPlatform(ctx, &p, pf.Manufacturers)
	if err != nil {
		return 0, err
	}
	pr.ic.platforms[ref.Name] = res.ID
	return res.ID, nil
}

// lookupPlatforms resolves platforms without storing anything. Unknown
// platforms resolve to 0 and their entries are skipped.
type lookupPlatforms struct {
	store store.Store
}

func (lp lookupPlatforms) ResolvePlatform(
	ctx context.Context,
	ref facts.Ref,
) (int64, error) {
	p, found, err := lp.store.FindPlatform(ctx, ref.Name)
	if err != nil || !found {
		return 0, err
	}
	return p.ID, nil
}
