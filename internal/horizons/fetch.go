package horizons

import (
	"context"
	"time"

	"github.com/rmaitra/helioviz/internal/catalog"
	"github.com/rmaitra/helioviz/internal/ephem"
)

// Range is the date window and step shared by every body in a fetch.
type Range struct {
	Start    time.Time
	Stop     time.Time
	StepDays int
}

// FetchSet queries the comet and each planet sequentially over the same
// range and assembles the aligned set. Any individual failure aborts the
// whole fetch. The epoch count comes from the comet's series; the set
// constructor enforces that every planet matches it.
func FetchSet(ctx context.Context, c *Client, r Range, comet catalog.Entry, planets []catalog.Entry) (*ephem.Set, error) {
	query := func(e catalog.Entry) (ephem.Series, error) {
		return c.Vectors(ctx, Query{
			Command:  e.Designation,
			Center:   SunCenter,
			Start:    r.Start,
			Stop:     r.Stop,
			StepDays: r.StepDays,
		})
	}

	cometSeries, err := query(comet)
	if err != nil {
		return nil, err
	}

	planetBodies := make([]ephem.Body, 0, len(planets))
	for _, p := range planets {
		series, err := query(p)
		if err != nil {
			return nil, err
		}
		planetBodies = append(planetBodies, ephem.Body{
			Designation: p.Designation,
			Name:        p.Name,
			Series:      series,
		})
	}

	epochs := ephem.Epochs{
		Start:    r.Start,
		StepDays: r.StepDays,
		Count:    len(cometSeries),
	}

	return ephem.NewSet(epochs, ephem.Body{
		Designation: comet.Designation,
		Name:        comet.Name,
		Series:      cometSeries,
	}, planetBodies)
}
