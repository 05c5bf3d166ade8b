// Command emberdump reads a captured S101 byte stream from a file or stdin,
// reassembles its frames and prints the document tree of every data message.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/glowproto/ember/dom"
	"github.com/glowproto/ember/s101"
)

var (
	flagConfig string
	flagMax    int
	flagHex    bool
	flagLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "emberdump [file]",
	Short: "Decode an S101 byte stream into document trees",
	Long: `emberdump reads a captured S101 byte stream from the given file (or stdin),
reassembles frames and prints the BER document tree of every data message.
Dropped frames and keep-alive traffic are reported on stderr.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "TOML config file")
	rootCmd.Flags().IntVar(&flagMax, "max-frame-size", 0, "drop frames larger than this many bytes (0 = unbounded)")
	rootCmd.Flags().BoolVar(&flagHex, "hex", false, "also print the raw BER payload as hex")
	rootCmd.Flags().StringVar(&flagLevel, "log-level", "", "log level (trace..error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := defaultConfig()
	if flagConfig != "" {
		var err error
		if cfg, err = loadConfig(flagConfig); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("max-frame-size") {
		cfg.MaxFrameSize = flagMax
	}
	if cmd.Flags().Changed("hex") {
		cfg.Hex = flagHex
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	in := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	frames := 0
	dec := s101.NewStreamDecoder(func(payload []byte) {
		frames++
		dump(logger, cfg, frames, payload)
	})
	dec.OnError = func(err error) {
		logger.Warn().Err(err).Msg("frame dropped")
	}
	dec.MaxFrameSize = cfg.MaxFrameSize

	if _, err := io.Copy(dec, in); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	logger.Info().Int("frames", frames).Msg("stream complete")
	return nil
}

func dump(logger zerolog.Logger, cfg config, frame int, payload []byte) {
	msg, err := s101.DecodeMessage(payload)
	if err != nil {
		logger.Warn().Err(err).Int("frame", frame).Msg("unparseable message header")
		return
	}
	switch msg.Command {
	case s101.CommandKeepAliveRequest, s101.CommandKeepAliveResponse:
		logger.Debug().Int("frame", frame).Uint8("command", msg.Command).Msg("keep-alive")
		return
	}
	if len(msg.Payload) == 0 {
		logger.Debug().Int("frame", frame).Msg("empty data message")
		return
	}
	if cfg.Hex {
		fmt.Printf("frame %d: % X\n", frame, msg.Payload)
	}
	root, err := dom.Parse(msg.Payload)
	if err != nil {
		logger.Warn().Err(err).Int("frame", frame).Msg("unparseable payload")
		return
	}
	printNode(os.Stdout, root, 0)
}

func printNode(w io.Writer, n *dom.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Kind() == dom.Leaf {
		fmt.Fprintf(w, "%s%v %v\n", indent, n.Tag(), n.Value())
		return
	}
	fmt.Fprintf(w, "%s%v %v {\n", indent, n.Tag(), n.Kind())
	for c := range n.Children() {
		printNode(w, c, depth+1)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}
