package camera_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/camera"
)

const tol = 1e-9

var _ = Describe("Camera", func() {
	var c *camera.Camera

	BeforeEach(func() {
		c = camera.New(1000, 1000, 100)
	})

	Describe("WorldToScreen", func() {
		It("centers the world origin", func() {
			sx, sy := c.WorldToScreen(0, 0)
			Expect(sx).To(Equal(500.0))
			Expect(sy).To(Equal(500.0))
		})

		It("applies scale, zoom and offset", func() {
			c.Zoom = 2
			c.Pan(10, -20)
			sx, sy := c.WorldToScreen(1, 0.5)
			Expect(sx).To(BeNumerically("~", 1*100*2+10+500, tol))
			Expect(sy).To(BeNumerically("~", 0.5*100*2-20+500, tol))
		})
	})

	Describe("ScreenToWorld", func() {
		It("inverts WorldToScreen for arbitrary views", func() {
			r := rand.New(rand.NewSource(7))
			for i := 0; i < 500; i++ {
				c.OffsetX = (r.Float64() - 0.5) * 1e5
				c.OffsetY = (r.Float64() - 0.5) * 1e5
				c.SetZoom(math.Pow(10, r.Float64()*6-3))
				x := (r.Float64() - 0.5) * 80
				y := (r.Float64() - 0.5) * 80

				sx, sy := c.WorldToScreen(x, y)
				gx, gy := c.ScreenToWorld(sx, sy)
				Expect(gx).To(BeNumerically("~", x, 1e-6*math.Max(1, math.Abs(x))))
				Expect(gy).To(BeNumerically("~", y, 1e-6*math.Max(1, math.Abs(y))))

				wx, wy := c.ScreenToWorld(sx+3, sy-7)
				bx, by := c.WorldToScreen(wx, wy)
				Expect(bx).To(BeNumerically("~", sx+3, 1e-6))
				Expect(by).To(BeNumerically("~", sy-7, 1e-6))
			}
		})
	})

	Describe("ZoomAt", func() {
		DescribeTable("keeps the world point under the cursor",
			func(factor, cx, cy float64) {
				c.Pan(37, -12)
				wx, wy := c.ScreenToWorld(cx, cy)

				c.ZoomAt(cx, cy, factor)

				Expect(c.Zoom).To(BeNumerically("~", factor, tol))
				ax, ay := c.ScreenToWorld(cx, cy)
				Expect(ax).To(BeNumerically("~", wx, tol))
				Expect(ay).To(BeNumerically("~", wy, tol))
			},
			Entry("zoom out by half", 0.5, 120.0, 880.0),
			Entry("zoom in by two", 2.0, 731.0, 64.0),
			Entry("wheel step", 1.1, 500.0, 500.0),
			Entry("wheel step off center", 1.1, 13.0, 999.0),
		)

		It("does not drift over repeated wheel steps", func() {
			cx, cy := 300.0, 650.0
			wx, wy := c.ScreenToWorld(cx, cy)
			for i := 0; i < 40; i++ {
				c.ZoomAt(cx, cy, 1.1)
			}
			for i := 0; i < 25; i++ {
				c.ZoomAt(cx, cy, 1/1.1)
			}
			ax, ay := c.ScreenToWorld(cx, cy)
			Expect(ax).To(BeNumerically("~", wx, 1e-9))
			Expect(ay).To(BeNumerically("~", wy, 1e-9))
		})

		It("clamps the zoom to a positive floor", func() {
			for i := 0; i < 200; i++ {
				c.ZoomAt(500, 500, 0.5)
			}
			Expect(c.Zoom).To(Equal(camera.MinZoom))
			x, y := c.ScreenToWorld(10, 10)
			Expect(math.IsInf(x, 0) || math.IsNaN(x)).To(BeFalse())
			Expect(math.IsInf(y, 0) || math.IsNaN(y)).To(BeFalse())
		})

		It("clamps the zoom to a ceiling", func() {
			for i := 0; i < 200; i++ {
				c.ZoomAt(500, 500, 2)
			}
			Expect(c.Zoom).To(Equal(camera.MaxZoom))
		})

		It("ignores invalid factors", func() {
			for _, f := range []float64{0, -2, math.NaN(), math.Inf(1)} {
				c.ZoomAt(100, 100, f)
				Expect(c.Zoom).To(Equal(1.0))
				Expect(c.OffsetX).To(Equal(0.0))
			}
		})
	})

	Describe("Pan", func() {
		It("changes only the offset", func() {
			c.SetZoom(3)
			c.Pan(15, -4)
			Expect(c.Zoom).To(Equal(3.0))
			Expect(c.OffsetX).To(Equal(15.0))
			Expect(c.OffsetY).To(Equal(-4.0))
		})

		It("composes additively", func() {
			other := camera.New(1000, 1000, 100)
			c.Pan(12.5, -3)
			c.Pan(-4, 9.25)
			other.Pan(12.5-4, -3+9.25)
			Expect(c.OffsetX).To(BeNumerically("~", other.OffsetX, tol))
			Expect(c.OffsetY).To(BeNumerically("~", other.OffsetY, tol))
		})
	})

	Describe("dragging", func() {
		It("pans by cursor deltas only while dragging", func() {
			c.DragTo(50, 50)
			Expect(c.OffsetX).To(Equal(0.0))

			c.BeginDrag(100, 100)
			Expect(c.Dragging()).To(BeTrue())
			c.DragTo(110, 95)
			c.DragTo(130, 90)
			Expect(c.OffsetX).To(Equal(30.0))
			Expect(c.OffsetY).To(Equal(-10.0))

			c.EndDrag()
			c.DragTo(500, 500)
			Expect(c.Dragging()).To(BeFalse())
			Expect(c.OffsetX).To(Equal(30.0))
		})
	})

	It("falls back to the default base scale", func() {
		Expect(camera.New(10, 10, 0).BaseScale).To(Equal(camera.DefaultBaseScale))
	})

	It("resets the view", func() {
		c.Pan(3, 4)
		c.SetZoom(5)
		c.BeginDrag(1, 1)
		c.Reset()
		Expect(c.OffsetX).To(BeZero())
		Expect(c.Zoom).To(Equal(1.0))
		Expect(c.Dragging()).To(BeFalse())
	})
})
