package sim

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

type frameCounter struct{ frames int }

func (c *frameCounter) OnFrame(int, *physics.Scene, render.FrameStats) { c.frames++ }

var _ = Describe("Ensemble", func() {
	var (
		counters []*frameCounter
		ens      *Ensemble
	)

	BeforeEach(func() {
		counters = []*frameCounter{{}, {}, {}}
		ens = &Ensemble{
			Width:  1000,
			Height: 750,
			Frames: 20,
			Path:   Orbit(500, 375, 100, 10),
			Options: func(seed int64) (Options, error) {
				return DefaultOptions(seed), nil
			},
			Observers: func(idx int) []Observer {
				return []Observer{counters[idx]}
			},
		}
	})

	It("runs every seed to its frame budget", func() {
		runs, err := ens.Run(context.Background(), []int64{1, 2, 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(3))
		for i, s := range runs {
			Expect(s.Frames()).To(Equal(20))
			Expect(s.State()).To(Equal(Stopped))
			Expect(counters[i].frames).To(Equal(20))
		}
	})

	It("gives the same seed the same trajectory", func() {
		runs, err := ens.Run(context.Background(), []int64{9, 9})
		Expect(err).NotTo(HaveOccurred())
		a, b := runs[0].Scene().Pool.Snapshot(), runs[1].Scene().Pool.Snapshot()
		Expect(a).To(Equal(b))
	})

	It("reports option errors", func() {
		boom := errors.New("boom")
		ens.Options = func(int64) (Options, error) { return Options{}, boom }
		_, err := ens.Run(context.Background(), []int64{1})
		Expect(err).To(MatchError(boom))
	})
})
