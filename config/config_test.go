package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/anuragstark/multicloud-lb/config"
)

var _ = Describe("Config", func() {
	var tempDir string

	writeConfig := func(content string) {
		configPath := filepath.Join(tempDir, "config.yaml")
		Expect(os.WriteFile(configPath, []byte(content), 0644)).To(Succeed())
		Expect(os.Chdir(tempDir)).To(Succeed())
	}

	BeforeEach(func() {
		viper.Reset()

		var err error
		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
		os.Unsetenv("PRIMARY_ADDRESS")
		os.Unsetenv("SECONDARY_ADDRESS")
	})

	Describe("Load", func() {
		Context("with a valid config file", func() {
			BeforeEach(func() {
				writeConfig(`
environment: "dev"

primary:
  name: "aws"
  address: "203.0.113.10"

secondary:
  name: "gcp"
  address: "198.51.100.7"

health_check:
  interval: "10s"

load_test:
  requests: 20
  delay: "250ms"

logging:
  level: "debug"
`)
			})

			It("should load successfully", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg).NotTo(BeNil())
			})

			It("should parse the endpoint pair", func() {
				cfg, _ := config.Load()
				Expect(cfg.Primary.Name).To(Equal("aws"))
				Expect(cfg.Primary.Address).To(Equal("203.0.113.10"))
				Expect(cfg.Secondary.Address).To(Equal("198.51.100.7"))
			})

			It("should parse overridden settings", func() {
				cfg, _ := config.Load()
				Expect(cfg.HealthCheck.Interval).To(Equal("10s"))
				Expect(cfg.LoadTest.Requests).To(Equal(20))
				Expect(cfg.Logging.Level).To(Equal("debug"))
			})

			It("should keep defaults for unset settings", func() {
				cfg, _ := config.Load()
				Expect(cfg.HealthCheck.ConnectTimeout).To(Equal("5s"))
				Expect(cfg.HealthCheck.TotalTimeout).To(Equal("10s"))
				Expect(cfg.LoadTest.ConnectTimeout).To(Equal("3s"))
				Expect(cfg.LoadTest.TotalTimeout).To(Equal("5s"))
			})
		})

		Context("with endpoint addresses from the environment", func() {
			BeforeEach(func() {
				Expect(os.Chdir(tempDir)).To(Succeed())
				os.Setenv("PRIMARY_ADDRESS", "203.0.113.10")
				os.Setenv("SECONDARY_ADDRESS", "198.51.100.7")
			})

			It("should load without a config file", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Primary.Address).To(Equal("203.0.113.10"))
				Expect(cfg.Secondary.Address).To(Equal("198.51.100.7"))
			})
		})

		Context("with a missing endpoint address", func() {
			BeforeEach(func() {
				writeConfig(`
primary:
  name: "aws"
  address: "203.0.113.10"

secondary:
  name: "gcp"
  address: ""
`)
			})

			It("should reject the configuration", func() {
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})

		Context("with an invalid duration", func() {
			BeforeEach(func() {
				writeConfig(`
primary:
  name: "aws"
  address: "203.0.113.10"

secondary:
  name: "gcp"
  address: "198.51.100.7"

health_check:
  interval: "soon"
`)
			})

			It("should reject the configuration", func() {
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})

		Context("with a non-positive request count", func() {
			BeforeEach(func() {
				writeConfig(`
primary:
  name: "aws"
  address: "203.0.113.10"

secondary:
  name: "gcp"
  address: "198.51.100.7"

load_test:
  requests: 0
`)
			})

			It("should reject the configuration", func() {
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Duration", func() {
		It("should parse a valid duration", func() {
			Expect(config.Duration("250ms", time.Second)).To(Equal(250 * time.Millisecond))
		})

		It("should fall back on an empty value", func() {
			Expect(config.Duration("", time.Second)).To(Equal(time.Second))
		})

		It("should fall back on a non-positive value", func() {
			Expect(config.Duration("-5s", time.Second)).To(Equal(time.Second))
		})
	})
})
