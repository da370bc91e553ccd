// Command servolink-shell is an interactive console for a drive handle.
//
// It runs against an in-memory loopback network, so drive behavior can be
// explored and dictionaries exercised without hardware: status words and
// emergency codes are injected from the console itself.
//
// Usage:
//
//	servolink-shell [flags]
//
// Flags:
//
//	-config <file>  Load a YAML configuration
//	-dict <file>    Load a register dictionary
//	-node <id>      Drive node id (default 1)
//	-log <file>     Append protocol events to a .slog file
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/servolink-protocol/servolink-go/pkg/config"
	"github.com/servolink-protocol/servolink-go/pkg/log"
	"github.com/servolink-protocol/servolink-go/pkg/net"
	"github.com/servolink-protocol/servolink-go/pkg/servo"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	dictPath := flag.String("dict", "", "Register dictionary XML file")
	node := flag.Uint("node", 0, "Drive node id (overrides config)")
	logPath := flag.String("log", "", "Protocol log file (.slog)")
	flag.Parse()

	if err := run(*configPath, *dictPath, *node, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dictPath string, node uint, logPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if dictPath != "" {
		cfg.Dictionary = dictPath
	}
	if node != 0 {
		cfg.Node = uint8(node)
	}
	if logPath != "" {
		cfg.Log.Path = logPath
	}

	var logger log.Logger = log.NoopLogger{}
	if cfg.Log.Path != "" {
		fl, err := log.NewFileLogger(cfg.Log.Path)
		if err != nil {
			return err
		}
		defer fl.Close()
		logger = fl
	}

	lo := net.NewLoopback(logger)
	defer lo.Close()

	opts := append(cfg.ServoOptions(), servo.WithLogger(logger))
	s, err := servo.New(lo, cfg.Node, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := cfg.ApplyUnits(s); err != nil {
		return err
	}

	sh := &shell{lo: lo, s: s, node: cfg.Node}
	return sh.run()
}

type shell struct {
	lo   *net.Loopback
	s    *servo.Servo
	node uint8
	rl   *readline.Instance
}

func (sh *shell) run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "servo> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	sh.rl = rl

	// Show decoded state changes and emergencies between prompts.
	sh.s.StateSubscribe(func(state servo.State, flags servo.Flags) {
		fmt.Fprintf(rl.Stdout(), "state: %s (flags %#x)\n", state, flags)
	})
	sh.s.EmergencySubscribe(func(code uint32) {
		fmt.Fprintf(rl.Stdout(), "emergency: %#x\n", code)
	})

	sh.printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			sh.printHelp()
		case "state":
			sh.cmdState()
		case "enable":
			sh.report(sh.s.Enable(2 * time.Second))
		case "disable":
			sh.report(sh.s.Disable(2 * time.Second))
		case "reset":
			sh.report(sh.s.FaultReset(2 * time.Second))
		case "read", "r":
			sh.cmdRead(args)
		case "write", "w":
			sh.cmdWrite(args)
		case "mode":
			sh.cmdMode(args)
		case "velocity", "v":
			sh.cmdVelocity(args)
		case "position", "p":
			sh.cmdPosition(args)
		case "torque", "t":
			sh.cmdTorque(args)
		case "push-status":
			sh.cmdPushStatus(args)
		case "push-emcy":
			sh.cmdPushEmergency(args)
		case "exit", "quit", "q":
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		default:
			fmt.Fprintf(rl.Stdout(), "Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (sh *shell) printHelp() {
	fmt.Fprint(sh.rl.Stdout(), `Commands:
  state                  Show the decoded drive state
  enable | disable       Walk the state machine
  reset                  Clear a latched fault
  read <id>              Read a dictionary register (scaled)
  write <id> <value>     Write a dictionary register (scaled)
  mode [get|set <n>]     Operation mode
  velocity <v>           Velocity set-point
  position <p>           Position set-point
  torque <t>             Torque set-point
  push-status <hex>      Inject a raw status word
  push-emcy <hex>        Inject an emergency code
  exit
`)
}

func (sh *shell) report(err error) {
	if err != nil {
		fmt.Fprintf(sh.rl.Stdout(), "error: %v\n", err)
		return
	}
	sh.cmdState()
}

func (sh *shell) cmdState() {
	state, flags := sh.s.State()
	fmt.Fprintf(sh.rl.Stdout(), "%s (word %#04x, flags %#x)\n",
		state, sh.s.StatusWord(), flags)
}

func (sh *shell) cmdRead(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.rl.Stdout(), "usage: read <id>")
		return
	}
	value, err := sh.s.Read(nil, args[0])
	if err != nil {
		fmt.Fprintf(sh.rl.Stdout(), "error: %v\n", err)
		return
	}
	fmt.Fprintf(sh.rl.Stdout(), "%s = %g\n", args[0], value)
}

func (sh *shell) cmdWrite(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(sh.rl.Stdout(), "usage: write <id> <value>")
		return
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(sh.rl.Stdout(), "error: invalid value %q\n", args[1])
		return
	}
	if err := sh.s.Write(nil, args[0], value, true); err != nil {
		fmt.Fprintf(sh.rl.Stdout(), "error: %v\n", err)
	}
}

func (sh *shell) cmdMode(args []string) {
	if len(args) == 2 && args[0] == "set" {
		n, err := strconv.ParseInt(args[1], 10, 8)
		if err != nil {
			fmt.Fprintln(sh.rl.Stdout(), "error: invalid mode")
			return
		}
		if err := sh.s.ModeSet(servo.Mode(n)); err != nil {
			fmt.Fprintf(sh.rl.Stdout(), "error: %v\n", err)
		}
		return
	}

	mode, err := sh.s.ModeGet()
	if err != nil {
		fmt.Fprintf(sh.rl.Stdout(), "error: %v\n", err)
		return
	}
	fmt.Fprintf(sh.rl.Stdout(), "mode = %d\n", mode)
}

func (sh *shell) cmdVelocity(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.rl.Stdout(), "usage: velocity <v>")
		return
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintln(sh.rl.Stdout(), "error: invalid velocity")
		return
	}
	if err := sh.s.VelocitySet(v); err != nil {
		fmt.Fprintf(sh.rl.Stdout(), "error: %v\n", err)
	}
}

func (sh *shell) cmdPosition(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.rl.Stdout(), "usage: position <p>")
		return
	}
	p, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintln(sh.rl.Stdout(), "error: invalid position")
		return
	}
	if err := sh.s.PositionSet(p, true, false, 0); err != nil {
		fmt.Fprintf(sh.rl.Stdout(), "error: %v\n", err)
	}
}

func (sh *shell) cmdTorque(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.rl.Stdout(), "usage: torque <t>")
		return
	}
	tq, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintln(sh.rl.Stdout(), "error: invalid torque")
		return
	}
	if err := sh.s.TorqueSet(tq); err != nil {
		fmt.Fprintf(sh.rl.Stdout(), "error: %v\n", err)
	}
}

func (sh *shell) cmdPushStatus(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.rl.Stdout(), "usage: push-status <hex>")
		return
	}
	word, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 16)
	if err != nil {
		fmt.Fprintln(sh.rl.Stdout(), "error: invalid status word")
		return
	}
	sh.lo.Preload(sh.node, 0x6041, []byte{byte(word >> 8), byte(word)})
	sh.lo.PushStatus(sh.node, uint16(word))
}

func (sh *shell) cmdPushEmergency(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.rl.Stdout(), "usage: push-emcy <hex>")
		return
	}
	code, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		fmt.Fprintln(sh.rl.Stdout(), "error: invalid emergency code")
		return
	}
	sh.lo.PushEmergency(sh.node, uint32(code))
}
