package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseConfig", func() {
	DescribeTable("valid configs",
		func(spec string, wantSets, wantWays, wantLineSize int, wantPolicy string) {
			cfg, err := ParseConfig(spec)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Sets).To(Equal(wantSets))
			Expect(cfg.Ways).To(Equal(wantWays))
			Expect(cfg.LineSize).To(Equal(wantLineSize))
			Expect(cfg.Policy).To(Equal(wantPolicy))
		},
		Entry("explicit linear", "2:2:64:linear", 2, 2, 64, "linear"),
		Entry("explicit hawkeye", "1:4:64:hawkeye", 1, 4, 64, "hawkeye"),
		Entry("automatic fully-associative (sets=1, ways>4)", "1:8:64", 1, 8, 64, "fully-associative"),
		Entry("automatic random (sets=1, ways<=4)", "1:4:64", 1, 4, 64, "random"),
		Entry("automatic random (sets>1)", "4:8:64", 4, 8, 64, "random"),
		Entry("minimum legal line size", "2:2:8", 2, 2, 8, "random"),
	)

	DescribeTable("invalid configs",
		func(spec string) {
			_, err := ParseConfig(spec)
			Expect(err).To(HaveOccurred())
			var cerr *ConfigError
			Expect(err).To(BeAssignableToTypeOf(cerr))
		},
		Entry("too few fields", "2:2"),
		Entry("too many fields", "2:2:64:linear:extra"),
		Entry("sets not a power of two", "3:2:64"),
		Entry("linesz not a power of two", "2:2:63"),
		Entry("linesz below minimum", "2:2:4"),
		Entry("unknown explicit policy", "2:2:64:lru"),
		Entry("non-numeric sets", "x:2:64"),
	)
})

var _ = Describe("newPolicy", func() {
	It("builds every named policy", func() {
		for _, name := range []string{"", "random", "linear", "fully-associative", "lru", "hawkeye"} {
			p, err := newPolicy(Config{Sets: 1, Ways: 4, Policy: name})
			Expect(err).NotTo(HaveOccurred())
			Expect(p).NotTo(BeNil())
		}
	})

	It("rejects an unknown policy name", func() {
		_, err := newPolicy(Config{Sets: 1, Ways: 4, Policy: "bogus"})
		Expect(err).To(HaveOccurred())
	})
})
