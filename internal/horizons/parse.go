package horizons

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rmaitra/helioviz/internal/ephem"
)

// Horizons marks unavailable values with "n.a."; some mirrors emit a large
// filler coordinate instead. Anything at or beyond the sentinel magnitude
// is treated as a gap, not a position.
const sentinelAU = 1e9

const (
	startOfEphem = "$$SOE"
	endOfEphem   = "$$EOE"
)

// ParseVectorTable extracts the position series from a Horizons result
// payload requested with EPHEM_TYPE=VECTORS, VEC_TABLE=1, CSV_FORMAT=YES.
// Each data row reads: JDTDB, calendar date, X, Y, Z.
func ParseVectorTable(result string) (ephem.Series, error) {
	soe := strings.Index(result, startOfEphem)
	eoe := strings.Index(result, endOfEphem)
	if soe < 0 || eoe < 0 || eoe < soe {
		return nil, fmt.Errorf("%w: no %s/%s block", ErrMalformedResponse, startOfEphem, endOfEphem)
	}

	block := result[soe+len(startOfEphem) : eoe]
	series := make(ephem.Series, 0, 128)

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 5 {
			return nil, fmt.Errorf("%w: vector row has %d fields: %q",
				ErrMalformedResponse, len(fields), line)
		}

		sample, err := parseSample(fields[2], fields[3], fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: %v in row %q", ErrMalformedResponse, err, line)
		}
		series = append(series, sample)
	}

	if len(series) == 0 {
		return nil, ephem.ErrEmptySet
	}
	return series, nil
}

func parseSample(xs, ys, zs string) (ephem.Sample, error) {
	coords := [3]float64{}
	for i, s := range []string{xs, ys, zs} {
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, "n.a.") {
			return ephem.Sample{Missing: true}, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ephem.Sample{}, fmt.Errorf("bad coordinate %q", s)
		}
		coords[i] = v
	}
	for _, v := range coords {
		if math.Abs(v) >= sentinelAU {
			return ephem.Sample{Missing: true}, nil
		}
	}
	return ephem.Sample{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
