package ioimport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gnames/gn"
	"github.com/vgarchive/vgdb/internal/iofetch"
	"github.com/vgarchive/vgdb/pkg/errcode"
	"github.com/vgarchive/vgdb/pkg/schema"
	"github.com/vgarchive/vgdb/pkg/store"
)

const testBase = "https://wiki.test"

// fakeFetcher serves files from testdata by URL.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{pages: pages, calls: make(map[string]int)}
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	file, ok := f.pages[url]
	if !ok {
		return nil, iofetch.StatusError(&iofetch.HTTPError{URL: url, Status: 404})
	}
	return os.ReadFile(filepath.Join("testdata", file))
}

type releaseKey struct {
	gameID, platformID int64
	region             string
	date               time.Time
}

// memStore keeps rows in maps and enforces the same keys and required
// fields as the database.
type memStore struct {
	mu     sync.Mutex
	nextID int64

	games         map[string]schema.Game
	companies     map[string]schema.Company
	roles         map[int64][]string
	employees     map[[2]string]int64
	platforms     map[string]schema.Platform
	manufacturers map[int64][]string
	releases      map[releaseKey]int64
	releaseGame   map[int64]int64
	credits       map[schema.Develops]struct{}
}

func newMemStore() *memStore {
	return &memStore{
		games:         make(map[string]schema.Game),
		companies:     make(map[string]schema.Company),
		roles:         make(map[int64][]string),
		employees:     make(map[[2]string]int64),
		platforms:     make(map[string]schema.Platform),
		manufacturers: make(map[int64][]string),
		releases:      make(map[releaseKey]int64),
		releaseGame:   make(map[int64]int64),
		credits:       make(map[schema.Develops]struct{}),
	}
}

func requiredErr(kind, column string) error {
	return &gn.Error{
		Code: errcode.StoreRequiredFieldError,
		Err:  fmt.Errorf("%s requires %s", kind, column),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) FindGame(_ context.Context, title string) (schema.Game, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[strings.TrimSpace(title)]
	return g, ok, nil
}

func (m *memStore) UpsertGame(_ context.Context, g *schema.Game) (store.Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	title := strings.TrimSpace(g.Title)
	if stored, ok := m.games[title]; ok {
		*g = stored
		return store.Resolution{Status: store.StatusFound, ID: g.ID}, nil
	}
	if title == "" {
		return store.Resolution{}, requiredErr("game", "title")
	}
	g.ID, g.Title = m.id(), title
	m.games[title] = *g
	return store.Resolution{Status: store.StatusInserted, ID: g.ID}, nil
}

func (m *memStore) SetEarliestReleaseDate(_ context.Context, gameID int64, d time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, g := range m.games {
		if g.ID == gameID {
			g.EarliestReleaseDate.Time, g.EarliestReleaseDate.Valid = d, true
			m.games[k] = g
			return nil
		}
	}
	return fmt.Errorf("game %d not found", gameID)
}

func (m *memStore) FindCompany(_ context.Context, name string) (schema.Company, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[strings.TrimSpace(name)]
	return c, ok, nil
}

func (m *memStore) UpsertCompany(
	_ context.Context,
	c *schema.Company,
	roles ...string,
) (store.Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := strings.TrimSpace(c.Name)
	res := store.Resolution{Status: store.StatusFound}
	if stored, ok := m.companies[name]; ok {
		*c = stored
	} else {
		if name == "" {
			return store.Resolution{}, requiredErr("company", "name")
		}
		c.ID, c.Name = m.id(), name
		m.companies[name] = *c
		res.Status = store.StatusInserted
	}
	for _, r := range roles {
		if !slices.Contains(m.roles[c.ID], r) {
			m.roles[c.ID] = append(m.roles[c.ID], r)
		}
	}
	res.ID = c.ID
	return res, nil
}

func (m *memStore) UpsertEmployee(
	_ context.Context,
	name string,
	roles []string,
) (store.EmployeeResolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := store.EmployeeResolution{Name: name}
	name = strings.TrimSpace(name)
	for _, r := range roles {
		if name == "" || strings.TrimSpace(r) == "" {
			continue
		}
		k := [2]string{name, r}
		rid := store.RoleID{Role: r, Resolution: store.Resolution{Status: store.StatusFound}}
		id, ok := m.employees[k]
		if !ok {
			id = m.id()
			m.employees[k] = id
			rid.Status = store.StatusInserted
		}
		rid.ID = id
		res.Roles = append(res.Roles, rid)
	}
	if len(res.Roles) == 0 {
		return res, requiredErr("employee", "name")
	}
	return res, nil
}

func (m *memStore) FindPlatform(_ context.Context, name string) (schema.Platform, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.platforms[strings.TrimSpace(name)]
	return p, ok, nil
}

func (m *memStore) UpsertPlatform(
	_ context.Context,
	p *schema.Platform,
	manufacturers []string,
) (store.Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := strings.TrimSpace(p.Name)
	res := store.Resolution{Status: store.StatusFound}
	if stored, ok := m.platforms[name]; ok {
		*p = stored
	} else {
		if name == "" {
			return store.Resolution{}, requiredErr("platform", "name")
		}
		if p.CompanyID == 0 {
			return store.Resolution{}, requiredErr("platform", "company_id")
		}
		p.ID, p.Name = m.id(), name
		m.platforms[name] = *p
		res.Status = store.StatusInserted
	}
	for _, mf := range manufacturers {
		if !slices.Contains(m.manufacturers[p.ID], mf) {
			m.manufacturers[p.ID] = append(m.manufacturers[p.ID], mf)
		}
	}
	res.ID = p.ID
	return res, nil
}

func (m *memStore) UpsertRelease(_ context.Context, r *schema.GameRelease) (store.Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.GameID == 0 || r.PlatformID == 0 || r.Region == "" || r.ReleaseDate.IsZero() {
		return store.Resolution{}, requiredErr("release", "release_date")
	}
	k := releaseKey{r.GameID, r.PlatformID, r.Region, r.ReleaseDate}
	if id, ok := m.releases[k]; ok {
		r.ID = id
		return store.Resolution{Status: store.StatusFound, ID: id}, nil
	}
	r.ID = m.id()
	m.releases[k] = r.ID
	m.releaseGame[r.ID] = r.GameID
	return store.Resolution{Status: store.StatusInserted, ID: r.ID}, nil
}

func (m *memStore) InsertCredit(_ context.Context, d schema.Develops) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.credits[d]; ok {
		return false, nil
	}
	m.credits[d] = struct{}{}
	return true, nil
}

func (m *memStore) GameReleases(_ context.Context, gameID int64) ([]store.ReleaseView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []store.ReleaseView
	for k, id := range m.releases {
		if k.gameID != gameID {
			continue
		}
		var name string
		for _, p := range m.platforms {
			if p.ID == k.platformID {
				name = p.Name
			}
		}
		res = append(res, store.ReleaseView{
			ReleaseID: id, Platform: name, Region: k.region, Date: k.date,
		})
	}
	slices.SortFunc(res, func(a, b store.ReleaseView) int {
		return a.Date.Compare(b.Date)
	})
	return res, nil
}

func (m *memStore) CreditCount(_ context.Context, gameID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res int
	for d := range m.credits {
		if m.releaseGame[d.ReleaseID] == gameID {
			res++
		}
	}
	return res, nil
}

// counts returns the number of rows per table.
func (m *memStore) counts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int{
		"games":     len(m.games),
		"companies": len(m.companies),
		"employees": len(m.employees),
		"platforms": len(m.platforms),
		"releases":  len(m.releases),
		"credits":   len(m.credits),
	}
}

// faultyStore returns errors chosen by a test before delegating to
// memStore.
type faultyStore struct {
	*memStore
	releaseErr func(r *schema.GameRelease) error
	creditErr  func(d schema.Develops) error
}

func (f *faultyStore) UpsertRelease(
	ctx context.Context,
	r *schema.GameRelease,
) (store.Resolution, error) {
	if f.releaseErr != nil {
		if err := f.releaseErr(r); err != nil {
			return store.Resolution{}, err
		}
	}
	return f.memStore.UpsertRelease(ctx, r)
}

func (f *faultyStore) InsertCredit(ctx context.Context, d schema.Develops) (bool, error) {
	if f.creditErr != nil {
		if err := f.creditErr(d); err != nil {
			return false, err
		}
	}
	return f.memStore.InsertCredit(ctx, d)
}
