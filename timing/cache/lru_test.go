package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("lruPolicy", func() {
	It("fills empty ways before evicting anything", func() {
		c, err := New(Config{Sets: 1, Ways: 2, LineSize: 64, Policy: "lru"})
		Expect(err).NotTo(HaveOccurred())

		w0, ev0 := c.policy.Victimize(c, 0x000)
		w1, ev1 := c.policy.Victimize(c, 0x040)
		Expect(w0).To(Equal(0))
		Expect(w1).To(Equal(1))
		Expect(ev0).To(Equal(uint64(0)))
		Expect(ev1).To(Equal(uint64(0)))
	})

	It("evicts the least-recently-used way once full", func() {
		c, err := New(Config{Sets: 1, Ways: 2, LineSize: 64, Policy: "lru"})
		Expect(err).NotTo(HaveOccurred())

		c.policy.Victimize(c, 0x000) // way 0, tag 0
		c.policy.Victimize(c, 0x040) // way 1, tag 1

		// Touch tag 0 again so tag 1 becomes the LRU entry.
		_, hit := c.policy.CheckTag(c, 0x000)
		Expect(hit).To(BeTrue())

		way, evicted := c.policy.Victimize(c, 0x080) // tag 2
		Expect(way).To(Equal(1))
		Expect(payload(evicted)).To(Equal(uint64(1)))
	})

	It("keeps a separate recency queue per set", func() {
		c, err := New(Config{Sets: 2, Ways: 1, LineSize: 64, Policy: "lru"})
		Expect(err).NotTo(HaveOccurred())

		w0, _ := c.policy.Victimize(c, 0x000) // set 0
		w1, _ := c.policy.Victimize(c, 0x040) // set 1
		Expect(w0).To(Equal(0))
		Expect(w1).To(Equal(0))

		_, hit := c.policy.CheckTag(c, 0x000)
		Expect(hit).To(BeTrue())
		_, hit = c.policy.CheckTag(c, 0x040)
		Expect(hit).To(BeTrue())
	})
})
