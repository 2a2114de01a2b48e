package ioimport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vgarchive/vgdb/pkg/schema"
	"github.com/vgarchive/vgdb/pkg/store"
)

// credits are the resolved participants of a game.
type credits struct {
	employees  []store.RoleID
	developers []int64
	publishers []int64
}

// rows returns the develops rows of one release. Each dimension is
// listed once, paired with the first entry of the other two.
func (c credits) rows(releaseID int64) []schema.Develops {
	if len(c.employees) == 0 || len(c.developers) == 0 || len(c.publishers) == 0 {
		panic(fmt.Sprintf("release %d: linking requires an employee, "+
			"a developer and a publisher", releaseID))
	}
	must(releaseID, "release")
	emp, dev, pub := c.employees[0], c.developers[0], c.publishers[0]

	var res []schema.Develops
	row := func(e store.RoleID, devID, pubID int64) {
		must(e.ID, "employee")
		must(devID, "developer")
		must(pubID, "publisher")
		res = append(res, schema.Develops{
			ReleaseID:           releaseID,
			EmployeeID:          e.ID,
			Role:                e.Role,
			DevelopingCompanyID: devID,
			PublishingCompanyID: pubID,
		})
	}
	for _, e := range c.employees {
		row(e, dev, pub)
	}
	for _, d := range c.developers {
		row(emp, d, pub)
	}
	for _, p := range c.publishers {
		row(emp, dev, p)
	}
	return res
}

func must(id int64, kind string) {
	if id <= 0 {
		panic(fmt.Sprintf("unresolved %s passed to linker", kind))
	}
}

// link stores develops rows of all releases and returns the number of new
// rows. Existing rows are ignored.
func link(
	ctx context.Context,
	st store.Store,
	releaseIDs []int64,
	c credits,
) (int, error) {
	var res int
	for _, relID := range releaseIDs {
		for _, d := range c.rows(relID) {
			ok, err := st.InsertCredit(ctx, d)
			if store.IsRequiredField(err) {
				slog.Error("Cannot store credit", "release", relID, "error", err)
				continue
			}
			if err != nil {
				return res, err
			}
			if ok {
				res++
			}
		}
	}
	return res, nil
}
