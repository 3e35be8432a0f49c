package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32pipe/sim/timing/config"
)

var _ = Describe("SimConfig", func() {
	It("defaults to a million-cycle budget and a zero reset PC", func() {
		cfg := config.DefaultSimConfig()
		Expect(cfg.MaxCycles).To(Equal(uint64(1_000_000)))
		Expect(cfg.ResetPC).To(Equal(uint32(0)))
	})

	It("rejects a zero cycle budget", func() {
		cfg := config.DefaultSimConfig()
		cfg.MaxCycles = 0
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("rejects a misaligned reset PC", func() {
		cfg := config.DefaultSimConfig()
		cfg.ResetPC = 3
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("round-trips through a JSON file, overriding only the fields present", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "sim.json")
		Expect(os.WriteFile(path, []byte(`{"max_cycles": 500}`), 0o644)).To(Succeed())

		cfg, err := config.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.MaxCycles).To(Equal(uint64(500)))
		Expect(cfg.ResetPC).To(Equal(uint32(0)))
	})

	It("clones independently of the original", func() {
		cfg := config.DefaultSimConfig()
		clone := cfg.Clone()
		clone.MaxCycles = 42
		Expect(cfg.MaxCycles).To(Equal(uint64(1_000_000)))
	})
})
