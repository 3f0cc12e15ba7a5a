package anim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rmaitra/helioviz/internal/anim"
	"github.com/rmaitra/helioviz/internal/ephem"
	"github.com/rmaitra/helioviz/internal/render"
)

func buildSet(n int) *ephem.Set {
	comet := make(ephem.Series, n)
	earth := make(ephem.Series, n)
	for i := range comet {
		comet[i] = ephem.Sample{X: float64(i), Y: float64(-i), Z: 0.1 * float64(i)}
		earth[i] = ephem.Sample{X: 1, Y: float64(i), Z: 0}
	}
	set, err := ephem.NewSet(
		ephem.Epochs{
			Start:    time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
			StepDays: 2,
			Count:    n,
		},
		ephem.Body{Name: "3I/ATLAS", Series: comet},
		[]ephem.Body{{Name: "Earth", Series: earth}},
	)
	Expect(err).NotTo(HaveOccurred())
	return set
}

var _ = Describe("Animator", func() {
	var (
		set *ephem.Set
		a   *anim.Animator
	)

	BeforeEach(func() {
		set = buildSet(6)
		a = anim.New(set)
	})

	It("starts at frame zero", func() {
		Expect(a.Frame()).To(Equal(0))
		Expect(a.Len()).To(Equal(6))
		Expect(a.Done()).To(BeFalse())
	})

	It("advances one frame per step, never past the last", func() {
		for i := 1; i < 6; i++ {
			Expect(a.Step()).To(BeTrue())
			Expect(a.Frame()).To(Equal(i))
		}
		Expect(a.Done()).To(BeTrue())
		Expect(a.Step()).To(BeFalse(), "stepping past the final frame")
		Expect(a.Frame()).To(Equal(5), "frame index must never exceed N-1")
	})

	It("accumulates the path as the first k+1 samples at every frame", func() {
		for {
			k := a.Frame()
			prefix := a.PathPrefix()
			Expect(prefix).To(HaveLen(k + 1))
			Expect(prefix).To(Equal(set.Comet.Series[:k+1]))
			if !a.Step() {
				break
			}
		}
	})

	It("places the marker on the final sample at frame N-1", func() {
		for a.Step() {
		}
		prefix := a.PathPrefix()
		Expect(prefix[len(prefix)-1]).To(Equal(set.Comet.Series[5]))
	})

	It("rewinds to frame zero", func() {
		a.Step()
		a.Step()
		a.Rewind()
		Expect(a.Frame()).To(Equal(0))
	})
})

var _ = Describe("DrawFrame", func() {
	It("draws the cumulative path plus one marker per body", func() {
		set := buildSet(6)
		wf := render.NewWireframe()

		anim.DrawFrame(wf, set, 3)

		// Frame 3: 1 isolated point + 3 path edges, comet marker, Earth marker.
		markers := 0
		for _, e := range wf.Edges {
			if e.Marker {
				markers++
			}
		}
		Expect(markers).To(Equal(2))
		Expect(wf.Edges).To(HaveLen(4 + 2))
	})

	It("breaks the path at missing samples and skips their markers", func() {
		set := buildSet(6)
		set.Comet.Series[2] = ephem.Sample{Missing: true}

		wf := render.NewWireframe()
		anim.DrawFrame(wf, set, 2)

		markers := 0
		for _, e := range wf.Edges {
			if e.Marker {
				markers++
			}
		}
		// Earth marker only: the comet marker sits on a gap.
		Expect(markers).To(Equal(1))
	})

	It("ignores out-of-range frames", func() {
		set := buildSet(3)
		wf := render.NewWireframe()
		anim.DrawFrame(wf, set, -1)
		anim.DrawFrame(wf, set, 3)
		Expect(wf.Edges).To(BeEmpty())
	})
})
