package ioimport

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vgarchive/vgdb/pkg/fallback"
	"github.com/vgarchive/vgdb/pkg/release"
	"github.com/vgarchive/vgdb/pkg/schema"
	"github.com/vgarchive/vgdb/pkg/store"
)

// fallbacks stores generic records on first use and remembers their ids.
type fallbacks struct {
	store store.Store

	mu         sync.Mutex
	companyID  int64
	platformID int64
}

func newFallbacks(st store.Store) *fallbacks {
	return &fallbacks{store: st}
}

// company returns the id of the generic company, tagged as developer and
// publisher.
func (f *fallbacks) company(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.companyID > 0 {
		return f.companyID, nil
	}
	c := fallback.Company()
	res, err := f.store.UpsertCompany(ctx, &c,
		schema.RoleDeveloper, schema.RolePublisher)
	if err != nil {
		return 0, FallbackError("company", err)
	}
	slog.Debug("Generic company ready", "id", res.ID, "status", res.Status)
	f.companyID = res.ID
	return res.ID, nil
}

// platform returns the id of the generic platform.
func (f *fallbacks) platform(ctx context.Context) (int64, error) {
	companyID, err := f.company(ctx)
	if err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.platformID > 0 {
		return f.platformID, nil
	}
	p := fallback.Platform(companyID)
	res, err := f.store.UpsertPlatform(ctx, &p, nil)
	if err != nil {
		return 0, FallbackError("platform", err)
	}
	f.platformID = res.ID
	return res.ID, nil
}

// employee stores the generic employee.
func (f *fallbacks) employee(ctx context.Context) ([]store.RoleID, error) {
	e := fallback.Employee()
	res, err := f.store.UpsertEmployee(ctx, e.Name, e.Roles)
	if err != nil {
		return nil, FallbackError("employee", err)
	}
	return res.Roles, nil
}

// release stores the generic release fact of a game.
func (f *fallbacks) release(ctx context.Context, gameID int64) (storedFact, error) {
	platformID, err := f.platform(ctx)
	if err != nil {
		return storedFact{}, err
	}
	r := fallback.Release(gameID, platformID)
	res, err := f.store.UpsertRelease(ctx, &r)
	if err != nil {
		return storedFact{}, FallbackError("release", err)
	}
	return storedFact{
		id: res.ID,
		Fact: release.Fact{
			PlatformID: platformID,
			Platform:   fallback.PlatformName,
			Region:     r.Region,
			Date:       r.ReleaseDate,
		},
	}, nil
}
