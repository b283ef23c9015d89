package sim

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

// leakyHost never removes listeners, standing in for a host that keeps
// firing stale callbacks after teardown.
type leakyHost struct {
	*Headless
	onResize  func(int, int)
	onPointer func(float64, float64)
}

func (h *leakyHost) OnResize(fn func(int, int)) Listener {
	h.onResize = fn
	return ListenerFunc(func() {})
}

func (h *leakyHost) OnPointerMove(fn func(float64, float64)) Listener {
	h.onPointer = fn
	return ListenerFunc(func() {})
}

// stopOnAcquire stops its scheduler while Start is still acquiring the surface.
type stopOnAcquire struct {
	*Headless
	sched *Scheduler
}

func (h *stopOnAcquire) Acquire() (render.Surface, error) {
	h.sched.Stop()
	return h.Headless.Acquire()
}

var _ = Describe("Scheduler", func() {
	var (
		host  *Headless
		dl    *render.DisplayList
		sched *Scheduler
	)

	BeforeEach(func() {
		dl = &render.DisplayList{}
		host = NewHeadless(1000, 750, dl)
		sched = New(host, DefaultOptions(42))
	})

	Describe("Start", func() {
		It("registers both listeners, seeds the pool and enters Running", func() {
			Expect(sched.State()).To(Equal(Idle))

			d, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())
			Expect(d).NotTo(BeNil())
			Expect(sched.State()).To(Equal(Running))
			Expect(host.Listeners()).To(Equal(2))
			Expect(sched.Scene().Pool.Len()).To(Equal(30))

			x, y := sched.Scene().Pointer.Position()
			Expect(x).To(Equal(500.0))
			Expect(y).To(Equal(375.0))
		})

		It("refuses to start twice", func() {
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())
			_, err = sched.Start()
			Expect(err).To(MatchError(ErrAlreadyStarted))
		})

		It("releases everything when the surface is unavailable", func() {
			host.FailAcquire(errors.New("no 2d context"))

			d, err := sched.Start()
			Expect(err).To(MatchError(ErrSurfaceUnavailable))
			Expect(d).To(BeNil())
			Expect(sched.State()).To(Equal(Stopped))
			Expect(host.Listeners()).To(BeZero())
			Expect(sched.Run(context.Background())).To(MatchError(ErrNotRunning))
			Expect(dl.Ops).To(BeEmpty())
			Expect(IsSurfaceError(err)).To(BeTrue())
		})

		It("fails only the next acquisition", func() {
			host.FailAcquire(errors.New("no 2d context"))
			_, err := sched.Start()
			Expect(err).To(HaveOccurred())

			_, err = New(host, DefaultOptions(1)).Start()
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes listeners registered after a Stop that lands mid-start", func() {
			h := &stopOnAcquire{Headless: NewHeadless(1000, 750, nil)}
			h.sched = New(h, DefaultOptions(7))

			d, err := h.sched.Start()
			Expect(err).To(MatchError(ErrNotRunning))
			Expect(d).To(BeNil())
			Expect(h.sched.State()).To(Equal(Stopped))
			Expect(h.Listeners()).To(BeZero())

			h.sched.Stop()
			Expect(h.Listeners()).To(BeZero())
		})
	})

	Describe("Run", func() {
		It("rejects a scheduler that was never started", func() {
			Expect(sched.Run(context.Background())).To(MatchError(ErrNotRunning))
		})

		It("ticks until the host closes and then tears down", func() {
			host.Budget = 10
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())

			Expect(sched.Run(context.Background())).To(Succeed())
			Expect(sched.Frames()).To(Equal(10))
			Expect(host.Presented()).To(Equal(10))
			Expect(sched.State()).To(Equal(Stopped))
			Expect(host.Listeners()).To(BeZero())
		})

		It("clears, then draws every particle each tick", func() {
			host.Budget = 1
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())
			Expect(sched.Run(context.Background())).To(Succeed())

			Expect(dl.Ops[0].Kind).To(Equal(render.OpClear))
			Expect(dl.Ops[0].Width).To(Equal(1000))
			Expect(dl.Ops[0].Height).To(Equal(750))
			Expect(dl.Count(render.OpClear)).To(Equal(1))
			Expect(dl.Count(render.OpCircle)).To(Equal(30))
		})

		It("runs no further tick once an observer stops it", func() {
			sched.AddObserver(ObserverFunc(func(frame int, _ *physics.Scene, _ render.FrameStats) {
				if frame == 3 {
					sched.Stop()
				}
			}))
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())

			Expect(sched.Run(context.Background())).To(Succeed())
			Expect(sched.Frames()).To(Equal(3))
			Expect(host.Presented()).To(Equal(3))
		})

		It("wakes a pending frame wait on Stop", func() {
			host.FPS = 1
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())

			done := make(chan error, 1)
			go func() { done <- sched.Run(context.Background()) }()

			time.Sleep(20 * time.Millisecond)
			sched.Stop()
			Eventually(done, time.Second).Should(Receive(BeNil()))
			Expect(sched.Frames()).To(BeZero())
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			sched.AddObserver(ObserverFunc(func(frame int, _ *physics.Scene, _ render.FrameStats) {
				if frame == 2 {
					cancel()
				}
			}))
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())

			Expect(sched.Run(ctx)).To(MatchError(context.Canceled))
			Expect(sched.State()).To(Equal(Stopped))
			Expect(host.Listeners()).To(BeZero())
		})

		It("keeps the pool on resize", func() {
			host.Budget = 5
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())
			host.Resize(3000, 2000)

			Expect(sched.Run(context.Background())).To(Succeed())
			Expect(sched.Scene().Pool.Len()).To(Equal(30))
			w, h := sched.Scene().Viewport.Size()
			Expect(w).To(Equal(3000))
			Expect(h).To(Equal(2000))
		})

		It("follows a scripted pointer", func() {
			host.Budget = 4
			host.Path = Orbit(500, 375, 100, 4)
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())
			Expect(sched.Run(context.Background())).To(Succeed())

			// last frame index 3 is a quarter turn short of a full orbit
			x, y := sched.Scene().Pointer.Position()
			Expect(x).To(BeNumerically("~", 500, 1e-9))
			Expect(y).To(BeNumerically("~", 275, 1e-9))
		})
	})

	Describe("Stop", func() {
		It("is a no-op before Start", func() {
			sched.Stop()
			Expect(sched.State()).To(Equal(Idle))
		})

		It("is idempotent", func() {
			d, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())

			sched.Stop()
			Expect(func() {
				sched.Stop()
				d.Release()
			}).NotTo(Panic())
			Expect(sched.State()).To(Equal(Stopped))
		})

		It("deregisters listeners so later input changes nothing", func() {
			_, err := sched.Start()
			Expect(err).NotTo(HaveOccurred())
			sched.Stop()

			host.MovePointer(1, 2)
			host.Resize(10, 10)

			x, y := sched.Scene().Pointer.Position()
			Expect([]float64{x, y}).To(Equal([]float64{500, 375}))
			w, h := sched.Scene().Viewport.Size()
			Expect([]int{w, h}).To(Equal([]int{1000, 750}))
			Expect(sched.Run(context.Background())).To(MatchError(ErrNotRunning))
		})

		It("ignores stale callbacks from a host that keeps them", func() {
			leaky := &leakyHost{Headless: NewHeadless(1000, 750, nil)}
			s := New(leaky, DefaultOptions(1))
			_, err := s.Start()
			Expect(err).NotTo(HaveOccurred())

			leaky.onPointer(10, 10)
			x, _ := s.Scene().Pointer.Position()
			Expect(x).To(Equal(10.0))

			s.Stop()
			leaky.onPointer(20, 20)
			leaky.onResize(5, 5)

			x, _ = s.Scene().Pointer.Position()
			Expect(x).To(Equal(10.0))
			w, _ := s.Scene().Viewport.Size()
			Expect(w).To(Equal(1000))
		})
	})
})
