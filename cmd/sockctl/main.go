//go:build unix

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/socketlib/internal/config"
	"github.com/wippyai/socketlib/resource"
	"github.com/wippyai/socketlib/socket"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	var (
		ip          = flag.String("ip", "", "IPv4 address to bind")
		port        = flag.Uint("port", 0, "Port to bind (0 lets the kernel pick)")
		family      = flag.String("family", config.DefaultFamily, "Address family (inet, inet6, unix)")
		proto       = flag.String("proto", config.DefaultProtocol, "Protocol (tcp, udp)")
		planFile    = flag.String("config", "", "Path to a TOML bind plan")
		check       = flag.String("check", "", "Check an IPv4 literal and exit")
		hold        = flag.Bool("hold", false, "Keep sockets bound until interrupted")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		logLevel    = flag.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	var plan *config.Plan
	if *planFile != "" {
		p, err := config.Load(*planFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		plan = &p
		if !flagSet("log-level") {
			*logLevel = p.Log.Level
		}
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck
	socket.SetLogger(logger.Named("socket"))

	switch {
	case *check != "":
		if !runCheck(os.Stdout, *check) {
			return 1
		}
		return 0

	case *interactive:
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0

	case plan == nil && *ip == "":
		fmt.Fprintln(os.Stderr, "Usage: sockctl -ip <addr> [-port n] [-family inet] [-proto tcp] [-hold]")
		fmt.Fprintln(os.Stderr, "       sockctl -config <plan.toml> [-hold]")
		fmt.Fprintln(os.Stderr, "       sockctl -check <addr>")
		fmt.Fprintln(os.Stderr, "       sockctl -i  (interactive mode)")
		return 1
	}

	if plan == nil {
		plan = &config.Plan{Binds: []config.BindEntry{{
			Name:     "cli",
			Family:   *family,
			Protocol: *proto,
			Address:  *ip,
			Port:     int(*port),
		}}}
		if err := config.ValidateEntry(plan.Binds[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	sockets := resource.NewTable[*socket.Socket]()
	defer sockets.Close()

	failed := runPlan(os.Stdout, *plan, sockets)

	if *hold && sockets.Len() > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		fmt.Printf("\nHolding %d socket(s), press Ctrl+C to release\n", sockets.Len())
		<-ctx.Done()
		stop()
	}

	if err := sockets.Close(); err != nil {
		logger.Warn("release sockets", zap.Error(err))
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// runCheck reports whether literal passes the IPv4 validator after the same
// trimming BindConnection applies.
func runCheck(w io.Writer, literal string) bool {
	literal = socket.TrimSpace(literal)
	if !socket.IsIPv4Literal(literal) {
		fmt.Fprintf(w, "%q: invalid\n", literal)
		return false
	}
	v := socket.IPv4ToUint32(literal)
	addr := netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	fmt.Fprintf(w, "%q: valid 0x%08x (%s)\n", literal, v, addr)
	return true
}

// runPlan binds every entry in order and returns the number of failures.
// Bound sockets are kept in sockets.
func runPlan(w io.Writer, plan config.Plan, sockets *resource.Table[*socket.Socket]) int {
	failed := 0
	for _, entry := range plan.Binds {
		s, local, err := openAndBind(entry)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%-12s FAIL %v\n", entry.Name, err)
			continue
		}
		if _, err := sockets.Insert(s); err != nil {
			failed++
			_ = s.Close()
			fmt.Fprintf(w, "%-12s FAIL %v\n", entry.Name, err)
			continue
		}
		fmt.Fprintf(w, "%-12s OK   %s/%s %s\n", entry.Name, s.Family(), s.Protocol(), local)
	}
	return failed
}

// openAndBind creates a socket for entry and binds it. The socket is closed
// on failure.
func openAndBind(entry config.BindEntry) (*socket.Socket, string, error) {
	family, protocol, err := entry.Resolve()
	if err != nil {
		return nil, "", err
	}
	s, err := socket.New(family, protocol)
	if err != nil {
		return nil, "", err
	}
	if err := s.BindConnection(entry.Address, uint16(entry.Port)); err != nil {
		_ = s.Close()
		return nil, "", err
	}
	local, err := s.LocalAddr()
	if err != nil {
		local = "?"
	}
	return s, local, nil
}
