package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	match "github.com/0x5487/matching-core"
	"github.com/0x5487/matching-core/config"
	"github.com/0x5487/matching-core/protocol"
)

const (
	usage = "Invalid format. Use: buy/sell price qty"

	depthLimit uint32 = 20
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	match.SetLogger(logger)

	logger.Info("matching core started",
		"version", match.EngineVersion,
		"market_id", cfg.MarketID,
		"input", cfg.Input,
	)

	if err := run(cfg, os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("read input failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.AppConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// session owns the book and the OHLC tracker for the lifetime of one run.
type session struct {
	cfg        *config.AppConfig
	book       *match.OrderBook
	tracker    *match.OHLCTracker
	depth      *match.AggregatedBook
	serializer protocol.Serializer
	printer    *printer
}

func newSession(cfg *config.AppConfig, out io.Writer, logger *slog.Logger) *session {
	depth := match.NewAggregatedBook()
	p := &printer{out: out, precision: cfg.PricePrecision}
	publisher := match.NewTeePublishLog(p, match.NewSlogPublishLog(logger), depth)

	return &session{
		cfg:        cfg,
		book:       match.NewOrderBook(cfg.MarketID, match.WithPublishLog(publisher)),
		tracker:    match.NewOHLCTracker(),
		depth:      depth,
		serializer: &protocol.DefaultJSONSerializer{},
		printer:    p,
	}
}

// run reads commands until EOF or quit.
func run(cfg *config.AppConfig, in io.Reader, out io.Writer, logger *slog.Logger) error {
	s := newSession(cfg, out, logger)

	fmt.Fprintln(out, "Enter orders (buy/sell price qty):")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, ">> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "depth":
			if err := s.printDepth(); err != nil {
				logger.Error("print depth failed", "error", err)
			}
			continue
		}

		// only a malformed line gets the usage hint; bad values are dropped quietly
		if err := s.handle(line); err != nil {
			logger.Debug("order rejected", "line", line, "error", err)
			if errors.Is(err, protocol.ErrInvalidFormat) {
				fmt.Fprintln(out, usage)
			}
		}
	}
}

func (s *session) printDepth() error {
	if s.cfg.Input != config.InputJSON {
		s.printer.printDepth(s.depth)
		return nil
	}

	depth, err := s.book.Depth(depthLimit)
	if err != nil {
		return err
	}
	return s.printer.printDepthReport(s.printer.depthReport(s.cfg.MarketID, depth), s.serializer)
}

func (s *session) handle(line string) error {
	cmd, err := s.parse(line)
	if err != nil {
		return err
	}

	order, err := match.NewOrder(cmd)
	if err != nil {
		return err
	}

	s.book.Process(order, s.tracker)
	s.printer.printBook(s.book.Snapshot())
	s.printer.printOHLC(s.tracker)
	return nil
}

func (s *session) parse(line string) (*protocol.PlaceOrderCommand, error) {
	if s.cfg.Input != config.InputJSON {
		return protocol.ParsePlaceOrder(line)
	}

	cmd := &protocol.PlaceOrderCommand{}
	if err := s.serializer.Unmarshal([]byte(line), cmd); err != nil {
		return nil, errors.Join(protocol.ErrInvalidFormat, err)
	}
	return cmd, nil
}
