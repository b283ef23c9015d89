package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plexus/internal/render"
)

var _ = Describe("Cursor", func() {
	It("reports no move for the first poll", func() {
		var c Cursor
		Expect(c.Moved(120, 80)).To(BeFalse())
		Expect(c.Moved(120, 80)).To(BeFalse())
	})

	It("reports a move only when the position changes", func() {
		var c Cursor
		c.Moved(0, 0)
		Expect(c.Moved(0, 0)).To(BeFalse())
		Expect(c.Moved(10, 0)).To(BeTrue())
		Expect(c.Moved(10, 0)).To(BeFalse())
		Expect(c.Moved(10, 5)).To(BeTrue())
	})

	It("leaves the pointer centred until the cursor moves", func() {
		dl := &render.DisplayList{}
		host := NewHeadless(1000, 750, dl)
		s := New(host, DefaultOptions(5))
		_, err := s.Start()
		Expect(err).NotTo(HaveOccurred())

		var c Cursor
		if c.Moved(3, 4) {
			host.MovePointer(3, 4)
		}
		x, y := s.Scene().Pointer.Position()
		Expect([]float64{x, y}).To(Equal([]float64{500, 375}))

		if c.Moved(30, 40) {
			host.MovePointer(30, 40)
		}
		x, y = s.Scene().Pointer.Position()
		Expect([]float64{x, y}).To(Equal([]float64{30, 40}))
	})
})
