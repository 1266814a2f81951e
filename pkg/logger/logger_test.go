package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/runconfig/pkg/logger"
)

var _ = Describe("Logger", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	Describe("New", func() {
		It("should default to info level text output", func() {
			log := logger.New(logger.Options{Output: buf})
			Expect(log.Enabled(context.Background(), slog.LevelInfo)).To(BeTrue())
			Expect(log.Enabled(context.Background(), slog.LevelDebug)).To(BeFalse())

			log.Info("hello", slog.String("part", "Part One"))
			Expect(buf.String()).To(ContainSubstring(`msg=hello`))
			Expect(buf.String()).To(ContainSubstring(`part="Part One"`))
		})

		It("should write JSON when asked", func() {
			log := logger.New(logger.Options{Format: "JSON", Output: buf})
			log.Info("hello", slog.String("input_file", "full.txt"))

			var entry map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &entry)).To(Succeed())
			Expect(entry).To(HaveKeyWithValue("msg", "hello"))
			Expect(entry).To(HaveKeyWithValue("input_file", "full.txt"))
		})

		It("should annotate the source when asked", func() {
			log := logger.New(logger.Options{Format: logger.FormatJSON, AddSource: true, Output: buf})
			log.Info("with source")
			Expect(buf.String()).To(ContainSubstring(`"source"`))
		})

		It("should respect the configured level", func() {
			log := logger.New(logger.Options{Level: "error", Output: buf})
			Expect(log.Enabled(context.Background(), slog.LevelWarn)).To(BeFalse())
			Expect(log.Enabled(context.Background(), slog.LevelError)).To(BeTrue())
		})
	})

	DescribeTable("ParseLevel",
		func(name string, want slog.Level) {
			Expect(logger.ParseLevel(name)).To(Equal(want))
		},
		Entry("debug", "debug", slog.LevelDebug),
		Entry("upper case", "DEBUG", slog.LevelDebug),
		Entry("info", "info", slog.LevelInfo),
		Entry("warn", "warn", slog.LevelWarn),
		Entry("error", "error", slog.LevelError),
		Entry("padded", " warn ", slog.LevelWarn),
		Entry("unknown", "verbose", slog.LevelInfo),
		Entry("empty", "", slog.LevelInfo),
	)
})
