package render_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/render"
	"github.com/san-kum/deepshow/internal/scenes"
)

// marker registers renderers that only draw their own id as text.
func marker(ids ...int) *scenes.Registry {
	r := scenes.NewRegistry()
	for _, id := range ids {
		label := string(rune('0' + id))
		r.Register(id, label, func(s canvas.Surface, w, h, t float64) {
			s.FillText(label, 0, 0, canvas.AlignLeft)
		})
	}
	return r
}

var _ = Describe("Dispatcher", func() {
	var d *render.Dispatcher

	BeforeEach(func() {
		d = render.New(marker(1, 2, 3))
	})

	It("plans nothing before the first observation", func() {
		Expect(d.Plan().Layers).To(BeEmpty())
	})

	It("shows the first scene without a transition", func() {
		d.Observe(1)
		_, fading := d.Transition()
		Expect(fading).To(BeFalse())
		Expect(d.Plan().Layers).To(Equal([]render.Layer{{Scene: 1, Alpha: 1, Scale: 1}}))
	})

	It("ignores repeated observations of the same scene", func() {
		d.Observe(1)
		d.Advance(2 * time.Second)
		d.Observe(1)
		Expect(d.Current().Time).To(BeNumerically("~", 2, 1e-9))
		_, fading := d.Transition()
		Expect(fading).To(BeFalse())
	})

	Describe("a scene change", func() {
		BeforeEach(func() {
			d.Observe(1)
			d.Advance(3 * time.Second)
			d.Observe(2)
		})

		It("starts a transition and resets the animation clock", func() {
			tr, fading := d.Transition()
			Expect(fading).To(BeTrue())
			Expect(tr).To(Equal(render.TransitionState{From: 1, To: 2}))
			Expect(d.Current()).To(Equal(render.AnimationClock{Scene: 2}))
		})

		It("fades the outgoing scene out and the incoming scene in", func() {
			plan := d.Plan()
			Expect(plan.Layers).To(HaveLen(2))
			Expect(plan.Layers[0]).To(Equal(render.Layer{Scene: 1, Time: 3, Alpha: 1, Scale: 1}))
			Expect(plan.Layers[1]).To(Equal(render.Layer{Scene: 2, Time: 0, Alpha: 0, Scale: 0.9}))

			d.Advance(500 * time.Millisecond)
			plan = d.Plan()
			Expect(plan.Transition.Progress).To(BeNumerically("~", 0.5, 1e-9))
			Expect(plan.Layers[0].Alpha).To(BeNumerically("~", 0.5, 1e-9))
			Expect(plan.Layers[1].Alpha).To(BeNumerically("~", 0.5, 1e-9))
			Expect(plan.Layers[0].Scale).To(BeNumerically("~", 0.95, 1e-9))
			Expect(plan.Layers[0].Time).To(BeNumerically("~", 3.5, 1e-9))
		})

		It("zooms linearly while the alphas ease", func() {
			d.Advance(250 * time.Millisecond)
			plan := d.Plan()
			Expect(plan.Layers[0].Scale).To(BeNumerically("~", 0.975, 1e-9))
			Expect(plan.Layers[1].Scale).To(BeNumerically("~", 0.925, 1e-9))
			Expect(plan.Layers[1].Alpha).To(BeNumerically("~", 0.0625, 1e-9))
			Expect(plan.Layers[0].Alpha).To(BeNumerically("~", 0.9375, 1e-9))
		})

		It("keeps the alphas summing to one", func() {
			for i := 0; i < 10; i++ {
				d.Advance(90 * time.Millisecond)
				plan := d.Plan()
				Expect(plan.Layers[0].Alpha + plan.Layers[1].Alpha).To(BeNumerically("~", 1, 1e-9))
			}
		})

		It("settles on the new scene after the transition", func() {
			d.Advance(time.Second)
			_, fading := d.Transition()
			Expect(fading).To(BeFalse())
			Expect(d.Plan().Layers).To(Equal([]render.Layer{{Scene: 2, Time: 1, Alpha: 1, Scale: 1}}))
		})

		It("restarts from the latest scene when changed again mid-fade", func() {
			d.Advance(300 * time.Millisecond)
			d.Observe(3)
			tr, _ := d.Transition()
			Expect(tr).To(Equal(render.TransitionState{From: 2, To: 3}))
		})
	})

	It("cuts instantly without a transition duration", func() {
		d = render.New(marker(1, 2), render.WithTransition(0))
		d.Observe(1)
		d.Observe(2)
		_, fading := d.Transition()
		Expect(fading).To(BeFalse())
		Expect(d.Plan().Layers).To(HaveLen(1))
	})

	It("ignores non-positive deltas", func() {
		d.Observe(1)
		d.Advance(-time.Second)
		d.Advance(0)
		Expect(d.Current().Time).To(BeZero())
	})

	Describe("Paint", func() {
		It("is a no-op without a surface", func() {
			d.Observe(1)
			Expect(d.Paint(nil, 100, 100, d.Plan())).To(MatchError(canvas.ErrNoSurface))
		})

		It("paints the background before the scene", func() {
			rec := canvas.NewRecorder()
			d.Observe(1)
			Expect(d.Paint(rec, 640, 480, d.Plan())).To(Succeed())
			Expect(rec.Ops[0].Kind).To(Equal(canvas.OpClear))
			Expect(rec.Texts()).To(Equal([]string{"1"}))
			Expect(rec.AlphaDepth()).To(BeZero())
			Expect(rec.StateDepth()).To(BeZero())
		})

		It("paints both scenes mid-fade with their alphas", func() {
			rec := canvas.NewRecorder()
			d.Observe(1)
			d.Observe(2)
			d.Advance(250 * time.Millisecond)
			Expect(d.Paint(rec, 640, 480, d.Plan())).To(Succeed())

			var alphas []float64
			for _, op := range rec.Ops {
				if op.Kind == canvas.OpText {
					alphas = append(alphas, op.Alpha)
				}
			}
			Expect(rec.Texts()).To(Equal([]string{"1", "2"}))
			Expect(alphas[0]).To(BeNumerically("~", 1-render.Ease(0.25), 1e-9))
			Expect(alphas[1]).To(BeNumerically("~", render.Ease(0.25), 1e-9))
		})

		It("centers scenes on the viewport", func() {
			rec := canvas.NewRecorder()
			d.Observe(1)
			Expect(d.Paint(rec, 640, 480, d.Plan())).To(Succeed())
			for _, op := range rec.Ops {
				if op.Kind == canvas.OpText {
					Expect(op.Points).To(HaveLen(1))
					Expect(op.Points[0].X).To(BeNumerically("~", 320, 1e-9))
					Expect(op.Points[0].Y).To(BeNumerically("~", 240, 1e-9))
				}
			}
		})

		It("reports scenes without a renderer", func() {
			rec := canvas.NewRecorder()
			d.Observe(9)
			Expect(d.Paint(rec, 640, 480, d.Plan())).To(MatchError(scenes.ErrUnknownScene))
			Expect(rec.Ops).NotTo(BeEmpty())
		})
	})

	It("advances from clock timestamps in Frame", func() {
		rec := canvas.NewRecorder()
		Expect(d.Frame(rec, 320, 240, 1, 10*time.Second)).To(Succeed())
		Expect(d.Current().Time).To(BeZero())

		Expect(d.Frame(rec, 320, 240, 1, 12*time.Second)).To(Succeed())
		Expect(d.Current().Time).To(BeNumerically("~", 2, 1e-9))

		Expect(d.Frame(rec, 320, 240, 2, 12500*time.Millisecond)).To(Succeed())
		tr, fading := d.Transition()
		Expect(fading).To(BeTrue())
		Expect(tr.Progress).To(BeZero())
	})
})
