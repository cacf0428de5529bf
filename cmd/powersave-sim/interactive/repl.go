// Package interactive provides the interactive command-line interface
// for the powersave simulator.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/powersave-project/powersave-go/pkg/advertise"
	"github.com/powersave-project/powersave-go/pkg/commissioning"
	eventlog "github.com/powersave-project/powersave-go/pkg/log"
	"github.com/powersave-project/powersave-go/pkg/netstate"
	"github.com/powersave-project/powersave-go/pkg/power"
	"github.com/powersave-project/powersave-go/pkg/radio"
)

// Deps holds the device components the console drives.
type Deps struct {
	Manager *power.Manager
	Radio   *radio.Simulator
	State   *netstate.Tracker
	Window  *commissioning.Window

	// Publisher is nil when mDNS advertising is disabled.
	Publisher *advertise.Publisher

	// EventLog is the power event log path, empty when capture is disabled.
	EventLog string
}

// Console handles interactive mode for powersave-sim.
type Console struct {
	deps Deps
	rl   *readline.Instance

	// Traffic simulation control
	simCtx     context.Context
	simCancel  context.CancelFunc
	simRunning bool
}

// New creates a new interactive console.
func New(deps Deps) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "device> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{
		deps: deps,
		rl:   rl,
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Close terminates a pending Readline call so Run returns.
func (c *Console) Close() {
	c.rl.Close()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()
	defer c.stopSimulation()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
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
			c.printHelp()

		case "status", "s":
			c.cmdStatus()

		case "radio":
			c.cmdRadio()

		case "request", "req":
			c.cmdRequest(args)

		case "release", "rel":
			c.cmdRelease()

		case "verify":
			c.cmdVerify()

		case "commission", "comm":
			c.cmdCommission(args)

		case "provision":
			c.cmdProvision(args)

		case "connect":
			c.cmdConnect(args)

		case "fail-next":
			c.cmdFailNext(args)

		case "events":
			c.cmdEvents()

		case "start", "sim-start":
			c.cmdStart()

		case "stop", "sim-stop":
			c.cmdStop()

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
Powersave Device Commands:
  Power:
    status             - Show device status
    radio              - Show simulated radio parameters
    request [quiet]    - Acquire a high-performance request ('quiet' skips the
                         immediate transition)
    release            - Release one high-performance request
    verify             - Re-evaluate and apply the correct power mode
    fail-next [msg]    - Make the next radio reconfiguration fail

  Commissioning:
    commission open [button|command|startup] - Open the commissioning window
    commission begin   - Begin a commissioning session
    commission end ok|fail - End the active session
    commission close   - Close the window manually
    commission timeout <dur> - Set the window timeout (e.g. 5m)

  Network:
    provision on|off   - Set Wi-Fi credential state
    connect on|off     - Set connectivity state

  Simulation:
    start              - Start simulated traffic bursts
    stop               - Stop simulated traffic
    events             - Summarize the captured event log

  General:
    help               - Show this help
    quit               - Exit simulator`)
}

// cmdStatus shows the device status.
func (c *Console) cmdStatus() {
	mgr := c.deps.Manager
	w := c.deps.Window

	fmt.Fprintln(c.rl.Stdout(), "\nDevice Status")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Power Mode:     %s\n", mgr.Mode())
	fmt.Fprintf(c.rl.Stdout(), "  HP Requests:    %d\n", mgr.HighPerformanceRequests())

	commStatus := "idle"
	if mgr.IsCommissioningInProgress() {
		commStatus = "in progress"
	}
	fmt.Fprintf(c.rl.Stdout(), "  Commissioning:  %s\n", commStatus)

	switch {
	case w.IsSessionActive():
		fmt.Fprintf(c.rl.Stdout(), "  Window:         %s (session %s)\n", w.State(), shortID(w.SessionID()))
	case w.IsOpen():
		fmt.Fprintf(c.rl.Stdout(), "  Window:         %s (trigger %s, %s remaining)\n",
			w.State(), w.Trigger(), w.RemainingTime().Round(time.Second))
	default:
		fmt.Fprintf(c.rl.Stdout(), "  Window:         %s\n", w.State())
	}

	fmt.Fprintf(c.rl.Stdout(), "  Provisioned:    %v\n", c.deps.State.IsProvisioned())
	fmt.Fprintf(c.rl.Stdout(), "  Connected:      %v\n", c.deps.State.IsConnected())

	switch {
	case c.deps.Publisher == nil:
		fmt.Fprintf(c.rl.Stdout(), "  Advertising:    disabled\n")
	case c.deps.Publisher.IsAdvertising():
		info := c.deps.Publisher.Info()
		fmt.Fprintf(c.rl.Stdout(), "  Advertising:    yes (idle %s, active %s)\n",
			info.Intervals.Idle, info.Intervals.Active)
	default:
		fmt.Fprintf(c.rl.Stdout(), "  Advertising:    no\n")
	}

	simStatus := "stopped"
	if c.simRunning {
		simStatus = "running"
	}
	fmt.Fprintf(c.rl.Stdout(), "  Simulation:     %s\n", simStatus)
	fmt.Fprintln(c.rl.Stdout())
}

// cmdRadio shows the simulated radio parameters.
func (c *Console) cmdRadio() {
	p := c.deps.Radio.Params()

	fmt.Fprintln(c.rl.Stdout(), "\nRadio Parameters")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Mode:             %s\n", p.Mode)
	fmt.Fprintf(c.rl.Stdout(), "  Listen Interval:  %d\n", p.ListenInterval)
	fmt.Fprintf(c.rl.Stdout(), "  Beacon Interval:  %s\n", p.BeaconInterval)
	fmt.Fprintf(c.rl.Stdout(), "  Wake Interval:    %s\n", p.WakeInterval())
	fmt.Fprintf(c.rl.Stdout(), "  Duty Cycle:       %.1f%%\n", p.DutyCycle()*100)
	fmt.Fprintf(c.rl.Stdout(), "  Broadcast Filter: %v\n", p.BroadcastFilterEnabled)
	fmt.Fprintln(c.rl.Stdout())
}

// cmdRequest acquires a high-performance request.
func (c *Console) cmdRequest(args []string) {
	var err error
	if len(args) > 0 && args[0] == "quiet" {
		err = c.deps.Manager.RequestHighPerformanceWithoutTransition()
	} else {
		err = c.deps.Manager.RequestHighPerformanceWithTransition()
	}
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Request failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "OK (%d outstanding, mode %s)\n",
		c.deps.Manager.HighPerformanceRequests(), c.deps.Manager.Mode())
}

// cmdRelease releases one high-performance request.
func (c *Console) cmdRelease() {
	if err := c.deps.Manager.ReleaseHighPerformanceRequest(); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Release failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "OK (%d outstanding, mode %s)\n",
		c.deps.Manager.HighPerformanceRequests(), c.deps.Manager.Mode())
}

// cmdVerify re-evaluates the power mode.
func (c *Console) cmdVerify() {
	if err := c.deps.Manager.VerifyAndTransition(power.EventGeneric); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Verify failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "OK (mode %s)\n", c.deps.Manager.Mode())
}

// cmdCommission drives the commissioning window.
func (c *Console) cmdCommission(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: commission open|begin|end|close|timeout")
		return
	}

	w := c.deps.Window

	switch args[0] {
	case "open":
		trigger := commissioning.TriggerCommand
		if len(args) >= 2 {
			switch args[1] {
			case "button":
				trigger = commissioning.TriggerButton
			case "command":
				trigger = commissioning.TriggerCommand
			case "startup":
				trigger = commissioning.TriggerStartup
			default:
				fmt.Fprintf(c.rl.Stdout(), "Unknown trigger: %s\n", args[1])
				return
			}
		}
		if err := w.Open(trigger); err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Open failed: %v\n", err)
			return
		}
		fmt.Fprintf(c.rl.Stdout(), "Window open (%s remaining)\n", w.RemainingTime().Round(time.Second))

	case "begin":
		sessionID, err := w.BeginSession()
		if err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Begin failed: %v\n", err)
			return
		}
		fmt.Fprintf(c.rl.Stdout(), "Session %s active\n", shortID(sessionID))

	case "end":
		if len(args) < 2 || (args[1] != "ok" && args[1] != "fail") {
			fmt.Fprintln(c.rl.Stdout(), "Usage: commission end ok|fail")
			return
		}
		sessionID := w.SessionID()
		if sessionID == "" {
			fmt.Fprintln(c.rl.Stdout(), "No active session")
			return
		}
		if err := w.EndSession(sessionID, args[1] == "ok"); err != nil {
			fmt.Fprintf(c.rl.Stdout(), "End failed: %v\n", err)
			return
		}
		fmt.Fprintf(c.rl.Stdout(), "Session ended (window %s)\n", w.State())

	case "close":
		w.Close()
		fmt.Fprintln(c.rl.Stdout(), "Window closed")

	case "timeout":
		if len(args) < 2 {
			fmt.Fprintln(c.rl.Stdout(), "Usage: commission timeout <duration>")
			return
		}
		d, err := time.ParseDuration(args[1])
		if err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Invalid duration: %v\n", err)
			return
		}
		if err := w.SetTimeout(d); err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Set timeout failed: %v\n", err)
			return
		}
		fmt.Fprintf(c.rl.Stdout(), "Window timeout set to %s\n", w.Timeout())

	default:
		fmt.Fprintf(c.rl.Stdout(), "Unknown commission command: %s\n", args[0])
	}
}

// cmdProvision sets the Wi-Fi credential state.
func (c *Console) cmdProvision(args []string) {
	v, ok := parseOnOff(args)
	if !ok {
		fmt.Fprintln(c.rl.Stdout(), "Usage: provision on|off")
		return
	}
	c.deps.State.SetProvisioned(v)
	fmt.Fprintf(c.rl.Stdout(), "Provisioned: %v (mode %s)\n", v, c.deps.Manager.Mode())
}

// cmdConnect sets the connectivity state.
func (c *Console) cmdConnect(args []string) {
	v, ok := parseOnOff(args)
	if !ok {
		fmt.Fprintln(c.rl.Stdout(), "Usage: connect on|off")
		return
	}
	c.deps.State.SetConnected(v)
	fmt.Fprintf(c.rl.Stdout(), "Connected: %v\n", v)
}

// cmdFailNext injects a failure into the next radio reconfiguration.
func (c *Console) cmdFailNext(args []string) {
	msg := "injected radio failure"
	if len(args) > 0 {
		msg = strings.Join(args, " ")
	}
	c.deps.Radio.FailNext(errors.New(msg))
	fmt.Fprintf(c.rl.Stdout(), "Next radio reconfiguration will fail: %s\n", msg)
}

// cmdEvents summarizes the captured event log.
func (c *Console) cmdEvents() {
	if c.deps.EventLog == "" {
		fmt.Fprintln(c.rl.Stdout(), "Event capture disabled (run with -event-log)")
		return
	}

	reader, err := eventlog.NewReader(c.deps.EventLog)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed to open event log: %v\n", err)
		return
	}
	defer reader.Close()

	total := 0
	byCategory := make(map[eventlog.Category]int)
	var lastTransition *eventlog.TransitionEvent

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Failed to read event log: %v\n", err)
			return
		}
		total++
		byCategory[event.Category]++
		if event.Transition != nil {
			lastTransition = event.Transition
		}
	}

	fmt.Fprintf(c.rl.Stdout(), "\nEvent Log: %s\n", c.deps.EventLog)
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Total Events:   %d\n", total)
	for _, cat := range []eventlog.Category{
		eventlog.CategoryRequest,
		eventlog.CategoryDecision,
		eventlog.CategoryTransition,
		eventlog.CategoryState,
		eventlog.CategoryError,
	} {
		if count := byCategory[cat]; count > 0 {
			fmt.Fprintf(c.rl.Stdout(), "  %-14s  %d\n", cat.String()+":", count)
		}
	}
	if lastTransition != nil {
		fmt.Fprintf(c.rl.Stdout(), "  Last Transition: %s -> %s (%s)\n",
			lastTransition.From, lastTransition.To, lastTransition.Cause)
	}
	fmt.Fprintln(c.rl.Stdout())
}

// cmdStart starts the traffic simulation.
func (c *Console) cmdStart() {
	if c.simRunning {
		fmt.Fprintln(c.rl.Stdout(), "Simulation already running")
		return
	}
	c.startSimulation()
	fmt.Fprintln(c.rl.Stdout(), "Simulation started")
}

// cmdStop stops the traffic simulation.
func (c *Console) cmdStop() {
	if !c.simRunning {
		fmt.Fprintln(c.rl.Stdout(), "Simulation not running")
		return
	}
	c.stopSimulation()
	fmt.Fprintln(c.rl.Stdout(), "Simulation stopped")
}

// startSimulation starts the background traffic simulation.
func (c *Console) startSimulation() {
	if c.simRunning {
		return
	}
	c.simCtx, c.simCancel = context.WithCancel(context.Background())
	c.simRunning = true
	go c.runSimulation(c.simCtx)
}

// stopSimulation stops the background traffic simulation.
func (c *Console) stopSimulation() {
	if !c.simRunning {
		return
	}
	if c.simCancel != nil {
		c.simCancel()
	}
	c.simRunning = false
}

// runSimulation generates periodic traffic bursts: each burst holds one
// high-performance request for its duration, the way an application layer
// would around an exchange.
func (c *Console) runSimulation(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.deps.Manager.RequestHighPerformanceWithTransition(); err != nil {
				log.Printf("[SIM] traffic burst skipped: %v", err)
				continue
			}
			log.Printf("[SIM] traffic burst: holding high performance")

			select {
			case <-ctx.Done():
				_ = c.deps.Manager.ReleaseHighPerformanceRequest()
				return
			case <-time.After(1500 * time.Millisecond):
			}

			if err := c.deps.Manager.ReleaseHighPerformanceRequest(); err != nil {
				log.Printf("[SIM] release failed: %v", err)
				continue
			}
			log.Printf("[SIM] traffic burst complete (mode %s)", c.deps.Manager.Mode())
		}
	}
}

func parseOnOff(args []string) (bool, bool) {
	if len(args) < 1 {
		return false, false
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return true, true
	case "off", "false", "0":
		return false, true
	}
	return false, false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
