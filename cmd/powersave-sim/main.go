// Command powersave-sim runs a simulated battery-powered device around the
// power-mode arbitration core.
//
// The simulator wires a software Wi-Fi radio, network state tracking, a
// commissioning window, and optional mDNS advertising to one power manager,
// then drops into an interactive prompt for driving the device by hand.
//
// Usage:
//
//	powersave-sim [flags]
//
// Flags:
//
//	-device-id string      Device identifier (auto-generated if empty)
//	-config string         Configuration file path (YAML)
//	-provisioned           Start with Wi-Fi credentials provisioned
//	-mdns                  Advertise the device over mDNS
//	-port int              Advertised service port (default 5540)
//	-dtim int              DTIM period for the simulated radio (default 3)
//	-beacon duration       Beacon interval of the simulated AP (default 100ms)
//	-window-timeout duration  Commissioning window timeout (default 2m0s)
//	-event-log string      Write power events to this file (CBOR)
//	-log-level string      Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Factory-fresh device: deep sleep until commissioned
//	powersave-sim -device-id lamp-1
//
//	# Provisioned device with event capture for powersave-log
//	powersave-sim -provisioned -event-log device.plog
//
//	# Advertise reachability pacing over mDNS
//	powersave-sim -provisioned -mdns -port 5541
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/powersave-project/powersave-go/cmd/powersave-sim/interactive"
	"github.com/powersave-project/powersave-go/pkg/advertise"
	"github.com/powersave-project/powersave-go/pkg/commissioning"
	eventlog "github.com/powersave-project/powersave-go/pkg/log"
	"github.com/powersave-project/powersave-go/pkg/netstate"
	"github.com/powersave-project/powersave-go/pkg/power"
	"github.com/powersave-project/powersave-go/pkg/radio"
)

// Config holds the simulator configuration.
type Config struct {
	DeviceID       string
	ConfigFile     string
	Provisioned    bool
	MDNS           bool
	Port           uint16
	DTIMPeriod     uint8
	BeaconInterval time.Duration
	WindowTimeout  time.Duration
	EventLog       string
	LogLevel       string
}

// fileConfig is the YAML form of Config. Booleans are pointers so that an
// absent key does not override a flag default, and durations are strings
// parsed with time.ParseDuration.
type fileConfig struct {
	DeviceID       string `yaml:"deviceId"`
	Provisioned    *bool  `yaml:"provisioned"`
	MDNS           *bool  `yaml:"mdns"`
	Port           uint16 `yaml:"port"`
	DTIMPeriod     uint8  `yaml:"dtimPeriod"`
	BeaconInterval string `yaml:"beaconInterval"`
	WindowTimeout  string `yaml:"windowTimeout"`
	EventLog       string `yaml:"eventLog"`
	LogLevel       string `yaml:"logLevel"`
}

var (
	config Config
	port   uint // Temp vars for flag parsing
	dtim   uint
)

func init() {
	flag.StringVar(&config.DeviceID, "device-id", "", "Device identifier (auto-generated if empty)")
	flag.StringVar(&config.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.BoolVar(&config.Provisioned, "provisioned", false, "Start with Wi-Fi credentials provisioned")
	flag.BoolVar(&config.MDNS, "mdns", false, "Advertise the device over mDNS")
	flag.UintVar(&port, "port", advertise.DefaultPort, "Advertised service port")
	flag.UintVar(&dtim, "dtim", 3, "DTIM period for the simulated radio")
	flag.DurationVar(&config.BeaconInterval, "beacon", 100*time.Millisecond, "Beacon interval of the simulated AP")
	flag.DurationVar(&config.WindowTimeout, "window-timeout", commissioning.DefaultWindowTimeout, "Commissioning window timeout")
	flag.StringVar(&config.EventLog, "event-log", "", "Write power events to this file (CBOR)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()
	config.Port = uint16(port)
	config.DTIMPeriod = uint8(dtim)

	if config.ConfigFile != "" {
		if err := applyConfigFile(config.ConfigFile); err != nil {
			log.Fatalf("Invalid configuration file: %v", err)
		}
	}
	applyDefaults()

	log.SetFlags(log.Ltime | log.Lmicroseconds)
	log.Println("Powersave Reference Device")
	log.Println("==========================")
	log.Printf("Device ID: %s", config.DeviceID)
	log.Printf("Provisioned: %v", config.Provisioned)
	log.Printf("DTIM period: %d, beacon interval: %s", config.DTIMPeriod, config.BeaconInterval)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(config.LogLevel),
	}))

	// Simulated radio
	simCfg := radio.DefaultSimulatorConfig()
	simCfg.DTIMPeriod = radio.DTIMPeriod(config.DTIMPeriod)
	simCfg.BeaconInterval = config.BeaconInterval
	simCfg.Logger = logger
	sim, err := radio.NewSimulator(simCfg)
	if err != nil {
		log.Fatalf("Invalid radio configuration: %v", err)
	}

	// Network state
	tracker := netstate.NewTracker()
	tracker.SetProvisioned(config.Provisioned)

	// Power manager
	mgr := power.NewManager()
	mgr.SetLogger(logger)

	var events *eventlog.FileLogger
	if config.EventLog != "" {
		events, err = eventlog.NewFileLogger(config.EventLog)
		if err != nil {
			log.Fatalf("Failed to create event log: %v", err)
		}
		mgr.SetEventLogger(events, config.DeviceID)
		log.Printf("Event log: %s", config.EventLog)
	}

	// Commissioning window
	window := commissioning.NewWindow()
	if err := window.SetTimeout(config.WindowTimeout); err != nil {
		log.Fatalf("Invalid window timeout: %v", err)
	}

	// mDNS advertising
	var publisher *advertise.Publisher
	if config.MDNS {
		mdns, err := advertise.NewMDNSAdvertiser(advertise.DefaultAdvertiserConfig())
		if err != nil {
			log.Fatalf("Failed to create mDNS advertiser: %v", err)
		}
		publisher = advertise.NewPublisher(mdns, advertise.ServiceInfo{
			DeviceID: config.DeviceID,
			Port:     config.Port,
		})
		publisher.SetWakeSource(func() time.Duration {
			return sim.Params().WakeInterval()
		})
	}

	mgr.OnTransition(func(old, new power.PowerMode, cause power.PowerEvent) {
		log.Printf("[POWER] %s -> %s (cause: %s)", old, new, cause)
		if publisher != nil {
			if err := publisher.HandleModeChange(new); err != nil {
				log.Printf("Warning: failed to update advertisement: %v", err)
			}
		}
	})

	if err := mgr.Init(sim, tracker); err != nil {
		if errors.Is(err, power.ErrInternal) {
			log.Printf("Warning: initial radio transition failed: %v", err)
		} else {
			log.Fatalf("Failed to initialize power manager: %v", err)
		}
	}
	log.Printf("Power manager started (mode: %s)", mgr.Mode())

	// Network edges re-evaluate the power mode. Registered after Init so a
	// pre-start provisioning flip cannot race the first transition.
	tracker.OnChange(func(ch netstate.Change) {
		log.Printf("[EVENT] %s changed: %v -> %v", ch.Entity, ch.Old, ch.New)
		if err := mgr.VerifyAndTransition(power.EventConnectivityChange); err != nil {
			log.Printf("Warning: power re-evaluation failed: %v", err)
		}
	})

	// Every open window holds one high-performance request; the close path
	// releases it no matter how the window ends.
	window.OnOpened(func(trigger commissioning.OpenTrigger) {
		log.Printf("[EVENT] Commissioning window opened (trigger: %s)", trigger)
		if err := mgr.HandleCommissioningSessionStarted(); err != nil {
			log.Printf("Warning: failed to raise power mode for commissioning: %v", err)
		}
	})
	window.OnClosed(func(reason commissioning.CloseReason) {
		log.Printf("[EVENT] Commissioning window closed (reason: %s)", reason)
		if err := mgr.HandleCommissioningSessionStopped(); err != nil {
			log.Printf("Warning: failed to restore power mode: %v", err)
		}
	})
	window.OnCommissioned(func(sessionID string) {
		log.Printf("[EVENT] Commissioning complete (session: %s)", shortID(sessionID))
		tracker.SetProvisioned(true)
		if err := mgr.VerifyAndTransition(power.EventCommissioningComplete); err != nil {
			log.Printf("Warning: power re-evaluation failed: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if publisher != nil {
		if err := publisher.Start(ctx); err != nil {
			log.Printf("Warning: failed to start advertising: %v", err)
		} else {
			log.Println("mDNS advertising enabled")
		}
	}

	// A factory-fresh device opens its commissioning window on boot.
	if !tracker.IsProvisioned() {
		if err := window.Open(commissioning.TriggerStartup); err != nil {
			log.Printf("Warning: failed to open commissioning window: %v", err)
		} else {
			printCommissioningInfo(window)
		}
	}

	console, err := interactive.New(interactive.Deps{
		Manager:   mgr,
		Radio:     sim,
		State:     tracker,
		Window:    window,
		Publisher: publisher,
		EventLog:  config.EventLog,
	})
	if err != nil {
		log.Fatalf("Failed to create console: %v", err)
	}
	log.SetOutput(console.Stdout())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal: %v", sig)
		cancel()
		console.Close()
	}()

	console.Run(ctx, cancel)

	log.SetOutput(os.Stderr)
	log.Println("Shutting down...")

	if publisher != nil {
		if err := publisher.Stop(); err != nil {
			log.Printf("Error stopping advertiser: %v", err)
		}
	}
	window.Close()
	if events != nil {
		if err := events.Close(); err != nil {
			log.Printf("Error closing event log: %v", err)
		}
	}

	log.Println("Goodbye!")
}

// applyConfigFile loads the YAML configuration and fills in every setting
// whose flag was not set explicitly on the command line.
func applyConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["device-id"] && fc.DeviceID != "" {
		config.DeviceID = fc.DeviceID
	}
	if !set["provisioned"] && fc.Provisioned != nil {
		config.Provisioned = *fc.Provisioned
	}
	if !set["mdns"] && fc.MDNS != nil {
		config.MDNS = *fc.MDNS
	}
	if !set["port"] && fc.Port != 0 {
		config.Port = fc.Port
	}
	if !set["dtim"] && fc.DTIMPeriod != 0 {
		config.DTIMPeriod = fc.DTIMPeriod
	}
	if !set["beacon"] && fc.BeaconInterval != "" {
		d, err := time.ParseDuration(fc.BeaconInterval)
		if err != nil {
			return fmt.Errorf("invalid beaconInterval: %w", err)
		}
		config.BeaconInterval = d
	}
	if !set["window-timeout"] && fc.WindowTimeout != "" {
		d, err := time.ParseDuration(fc.WindowTimeout)
		if err != nil {
			return fmt.Errorf("invalid windowTimeout: %w", err)
		}
		config.WindowTimeout = d
	}
	if !set["event-log"] && fc.EventLog != "" {
		config.EventLog = fc.EventLog
	}
	if !set["log-level"] && fc.LogLevel != "" {
		config.LogLevel = fc.LogLevel
	}
	return nil
}

func applyDefaults() {
	if config.DeviceID == "" {
		config.DeviceID = fmt.Sprintf("sim-%04d", time.Now().Unix()%10000)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printCommissioningInfo(window *commissioning.Window) {
	log.Println("")
	log.Println("============================================")
	log.Println("         COMMISSIONING INFORMATION          ")
	log.Println("============================================")
	log.Printf("  Device ID:      %s", config.DeviceID)
	log.Printf("  Window trigger: %s", window.Trigger())
	log.Printf("  Window timeout: %s", window.Timeout())
	log.Println("============================================")
	log.Println("")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
