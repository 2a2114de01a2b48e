// Package release turns the release listing of a game article into
// (platform, region, date) facts.
//
// Two layouts are recognized. In the short layout a list of platforms is
// followed by region/date entries shared by all of them. In the long
// layout every platform heading is followed by its own region/date
// entries.
package release

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vgarchive/vgdb/pkg/facts"
	"github.com/vgarchive/vgdb/pkg/store"
)

// ErrUnknownLayout means the listing has neither a platform list nor a
// platform heading as its first structural node.
var ErrUnknownLayout = errors.New("unknown release layout")

// WorldwideRegion is used for entries without a region label.
const WorldwideRegion = "WW"

// Layout of a release listing.
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutShort
	LayoutLong
)

func (l Layout) String() string {
	switch l {
	case LayoutShort:
		return "short"
	case LayoutLong:
		return "long"
	default:
		return "unknown"
	}
}

// PlatformResolver returns the id of a stored platform, inserting the
// platform when needed.
type PlatformResolver interface {
	ResolvePlatform(ctx context.Context, ref facts.Ref) (int64, error)
}

// Normalizer maps platform name variants to canonical names.
type Normalizer interface {
	Normalize(name string) string
}

// Fact is one release of a game.
type Fact struct {
	PlatformID int64
	Platform   string
	Region     string
	Date       time.Time
}

type factKey struct {
	platformID int64
	region     string
	date       time.Time
}

// Reconciler converts release listings to facts.
type Reconciler struct {
	platforms PlatformResolver
	aliases   Normalizer
}

// New creates a Reconciler. The aliases can be nil.
func New(pr PlatformResolver, aliases Normalizer) *Reconciler {
	return &Reconciler{platforms: pr, aliases: aliases}
}

// DetectLayout inspects the first structural node of the fragment.
func DetectLayout(frag facts.Fragment) Layout {
	for _, n := range frag.Nodes {
		switch n.Kind {
		case facts.NodeOther:
			continue
		case facts.NodePlatformList:
			return LayoutShort
		case facts.NodeHeading:
			return LayoutLong
		default:
			return LayoutUnknown
		}
	}
	return LayoutUnknown
}

// Reconcile returns the release facts of the fragment. Entries with
// unparsable dates are dropped. Platforms that cannot be stored because
// of missing required data are skipped together with their entries.
// Store transport errors are returned.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	frag facts.Fragment,
) ([]Fact, error) {
	switch DetectLayout(frag) {
	case LayoutShort:
		return r.short(ctx, frag)
	case LayoutLong:
		return r.long(ctx, frag)
	default:
		return nil, ErrUnknownLayout
	}
}

// short emits the cross product of all platforms and all entries.
func (r *Reconciler) short(
	ctx context.Context,
	frag facts.Fragment,
) ([]Fact, error) {
	var refs []facts.Ref
	var entries []facts.RegionDate
	for _, n := range frag.Nodes {
		switch n.Kind {
		case facts.NodeHeading:
			refs = append(refs, n.Ref)
		case facts.NodePlatformList:
			refs = append(refs, n.Platforms...)
		case facts.NodeRegionDateList:
			entries = append(entries, n.Entries...)
		}
	}

	type platform struct {
		id   int64
		name string
	}
	var plats []platform
	seen := make(map[string]struct{})
	for _, ref := range refs {
		ref.Name = r.normalize(ref.Name)
		if _, ok := seen[ref.Name]; ok || ref.Name == "" {
			continue
		}
		seen[ref.Name] = struct{}{}

		id, err := r.resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			continue
		}
		plats = append(plats, platform{id: id, name: ref.Name})
	}

	var res []Fact
	keys := make(map[factKey]struct{})
	for _, p := range plats {
		for _, e := range entries {
			res = appendFact(res, keys, p.id, p.name, e)
		}
	}
	return res, nil
}

// long attributes each region/date list to the platform of the
// preceding heading.
func (r *Reconciler) long(
	ctx context.Context,
	frag facts.Fragment,
) ([]Fact, error) {
	var res []Fact
	keys := make(map[factKey]struct{})
	var currentID int64
	var currentName string

	for _, n := range frag.Nodes {
		switch n.Kind {
		case facts.NodeHeading:
			ref := n.Ref
			ref.Name = r.normalize(ref.Name)
			currentID, currentName = 0, ref.Name
			if ref.Name == "" {
				continue
			}
			id, err := r.resolve(ctx, ref)
			if err != nil {
				return nil, err
			}
			currentID = id
		case facts.NodeRegionDateList:
			if currentID == 0 {
				slog.Warn("Release dates without a platform, skipping",
					"platform", currentName, "entries", len(n.Entries))
				continue
			}
			for _, e := range n.Entries {
				res = appendFact(res, keys, currentID, currentName, e)
			}
		}
	}
	return res, nil
}

// resolve returns 0 when the platform could not be stored because of
// missing data.
func (r *Reconciler) resolve(ctx context.Context, ref facts.Ref) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	id, err := r.platforms.ResolvePlatform(ctx, ref)
	if store.IsRequiredField(err) {
		slog.Error("Cannot store platform", "platform", ref.Name, "error", err)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Reconciler) normalize(name string) string {
	if r.aliases == nil {
		return facts.Clean(name)
	}
	return r.aliases.Normalize(facts.Clean(name))
}

func appendFact(
	res []Fact,
	keys map[factKey]struct{},
	platformID int64,
	platform string,
	e facts.RegionDate,
) []Fact {
	d, ok := facts.ParseDate(e.Date)
	if !ok {
		slog.Debug("Unparsable release date, dropping",
			"platform", platform, "region", e.Region, "date", e.Date)
		return res
	}
	region := facts.Clean(e.Region)
	if region == "" {
		region = WorldwideRegion
	}

	k := factKey{platformID: platformID, region: region, date: d}
	if _, ok := keys[k]; ok {
		return res
	}
	keys[k] = struct{}{}

	return append(res, Fact{
		PlatformID: platformID,
		Platform:   platform,
		Region:     region,
		Date:       d,
	})
}

// Earliest returns the minimum date of the facts. It returns false for
// an empty slice.
func Earliest(fs []Fact) (time.Time, bool) {
	if len(fs) == 0 {
		return time.Time{}, false
	}
	res := fs[0].Date
	for _, f := range fs[1:] {
		if f.Date.Before(res) {
			res = f.Date
		}
	}
	return res, true
}
