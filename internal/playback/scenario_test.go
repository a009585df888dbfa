package playback_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/deepshow/internal/clock"
	"github.com/san-kum/deepshow/internal/playback"
	"github.com/san-kum/deepshow/internal/scene"
)

func catalogOf(n int, d float64) *scene.Catalog {
	scenes := make([]scene.Scene, n)
	for i := range scenes {
		scenes[i] = scene.Scene{ID: i + 1, Duration: d}
	}
	c, err := scene.New(scenes)
	Expect(err).NotTo(HaveOccurred())
	return c
}

var _ = Describe("Controller", func() {
	var c *playback.Controller

	BeforeEach(func() {
		var err error
		c, err = playback.New(catalogOf(5, 15))
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports the total duration", func() {
		Expect(c.TotalDuration()).To(Equal(75.0))
	})

	It("walks through every scene and pauses at the end", func() {
		c.Play()
		for want := 2; want <= 5; want++ {
			c.Tick(15)
			Expect(c.State().SceneID).To(Equal(want))
			Expect(c.State().Elapsed).To(BeZero())
			Expect(c.State().Playing).To(BeTrue())
		}

		c.Tick(15)
		Expect(c.State()).To(Equal(playback.State{SceneID: 5, Elapsed: 15, Playing: false}))
		Expect(c.ElapsedTotal()).To(Equal(c.TotalDuration()))
	})

	It("ignores prev at the first scene and next at the last", func() {
		c.Prev()
		Expect(c.State().SceneID).To(Equal(1))

		Expect(c.Select(5)).To(Succeed())
		c.Next()
		Expect(c.State().SceneID).To(Equal(5))
	})

	DescribeTable("select resets elapsed regardless of prior state",
		func(playing bool, ticks float64, target int) {
			if playing {
				c.Play()
			}
			c.Tick(ticks)
			Expect(c.Select(target)).To(Succeed())

			st := c.State()
			Expect(st.SceneID).To(Equal(target))
			Expect(st.Elapsed).To(BeZero())
			Expect(st.Playing).To(Equal(playing))
		},
		Entry("paused", false, 3.0, 4),
		Entry("playing mid scene", true, 7.5, 2),
		Entry("playing, same scene", true, 4.0, 1),
	)

	It("rejects ids outside the catalog", func() {
		before := c.State()
		err := c.Select(6)
		Expect(err).To(MatchError(playback.ErrInvalidSceneID))
		Expect(c.State()).To(Equal(before))
	})
})

var _ = Describe("RunTimer", func() {
	It("advances a shared controller until cancelled", func() {
		ctrl, err := playback.New(catalogOf(2, 60))
		Expect(err).NotTo(HaveOccurred())
		safe := playback.NewSafe(ctrl)
		safe.Play()

		ctx, cancel := context.WithCancel(context.Background())
		var (
			mu    sync.Mutex
			ticks int
		)
		done := make(chan error, 1)
		go func() {
			done <- playback.RunTimer(ctx, safe, clock.NewSystem(), 5*time.Millisecond, func(playback.State) {
				mu.Lock()
				ticks++
				mu.Unlock()
			})
		}()

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return ticks
		}).Should(BeNumerically(">=", 3))

		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
		Expect(safe.Snapshot().Position).To(BeNumerically(">", 0))
	})
})
