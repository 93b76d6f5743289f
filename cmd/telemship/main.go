package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	telemship "github.com/edge-labs/telemship"
	logAdapter "github.com/edge-labs/telemship/internal/adapters/log"
	"github.com/edge-labs/telemship/internal/cliconfig"
	"github.com/edge-labs/telemship/plugins/credwatcher"
)

const helpDescription = `
Publish temperature and humidity telemetry from a Linux edge device over
mutually authenticated MQTT/TLS.

Highlights:
  - Fixed-interval measurements with interrupt-style scheduling; a slow
    broker never skews the measurement clock.
  - Survives broker outages with bounded reconnect backoff; reboots the
    device when the network link cannot be brought up.
  - Derives a stable MQTT client identifier from the device hardware;
    configure via file, env, or flags.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  telemship --thing-name greenhouse-7 --broker-endpoint broker.example.com \
      --client-cert /etc/telemship/cert.pem --private-key /etc/telemship/key.pem
  telemship --config /etc/telemship/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "telemship",
		Short:   "Publish device telemetry over mutually authenticated MQTT/TLS",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first, then env, then flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (TELEMSHIP_*)
			// These override file config but are overridden by flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Derive the hardware identity if not given explicitly
			if err := cliconfig.LoadHardwareID(&cfg); err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			libCfg := telemship.Config{
				ThingName:       cfg.ThingName,
				BrokerEndpoint:  cfg.BrokerEndpoint,
				BrokerPort:      cfg.BrokerPort,
				KeepAlive:       cfg.KeepAlive,
				RootCAPath:      cfg.RootCAPath,
				ClientCertPath:  cfg.ClientCertPath,
				PrivateKeyPath:  cfg.PrivateKeyPath,
				Interface:       cfg.Interface,
				SensorDevice:    cfg.SensorDevice,
				HardwareID:      cfg.HardwareID,
				MeasureInterval: cfg.MeasureInterval,
				PollInterval:    cfg.PollInterval,
				LinkTimeout:     cfg.LinkTimeout,
				ReconnectDelay:  cfg.ReconnectDelay,
				RestartDelay:    cfg.RestartDelay,
			}

			zerologAdapter := logAdapter.NewZerologAdapterWithLogger(log)

			opts := []telemship.Option{
				telemship.WithLogger(zerologAdapter),
			}
			if cfg.WatchCredentials {
				opts = append(opts, credwatcher.WithDefaultCredentialWatcher())
			}

			agent, err := telemship.New(libCfg, opts...)
			if err != nil {
				return fmt.Errorf("create telemship: %w", err)
			}

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := agent.Start(ctx); err != nil {
				return fmt.Errorf("start telemship: %w", err)
			}

			// Detect completion (crash or plugin-requested stop)
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := agent.Status()
						if status == telemship.StateStopped || status == telemship.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
			case <-doneCh:
				if agent.Status() == telemship.StateCrashed {
					log.Error().Msg("telemship crashed")
				}
			}

			if err := agent.Stop(); err != nil && !errors.Is(err, telemship.ErrNotRunning) {
				return fmt.Errorf("stop telemship: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: /etc/telemship/config.toml)")
	root.Flags().StringVar(&cfg.ThingName, "thing-name", cfg.ThingName, "device name used in topics and payloads")

	root.Flags().StringVar(&cfg.BrokerEndpoint, "broker-endpoint", cfg.BrokerEndpoint, "MQTT broker hostname")
	root.Flags().IntVar(&cfg.BrokerPort, "broker-port", cfg.BrokerPort, "MQTT broker TLS port")
	root.Flags().DurationVar(&cfg.KeepAlive, "keepalive", cfg.KeepAlive, "MQTT keepalive interval")

	root.Flags().StringVar(&cfg.RootCAPath, "root-ca", cfg.RootCAPath, "root CA bundle for broker authentication (optional)")
	root.Flags().StringVar(&cfg.ClientCertPath, "client-cert", cfg.ClientCertPath, "device certificate (PEM)")
	root.Flags().StringVar(&cfg.PrivateKeyPath, "private-key", cfg.PrivateKeyPath, "device private key (PEM)")

	root.Flags().StringVar(&cfg.Interface, "interface", cfg.Interface, "network interface watched for link state")
	root.Flags().StringVar(&cfg.WifiSSID, "wifi-ssid", cfg.WifiSSID, "SSID the system supplicant associates with (informational)")
	root.Flags().StringVar(&cfg.SensorDevice, "sensor-device", cfg.SensorDevice, "IIO device exposing the sensor")

	root.Flags().DurationVar(&cfg.MeasureInterval, "measure-interval", cfg.MeasureInterval, "interval between measurements")
	root.Flags().DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "work signal polling interval")
	root.Flags().DurationVar(&cfg.LinkTimeout, "link-timeout", cfg.LinkTimeout, "network link bring-up timeout")
	root.Flags().DurationVar(&cfg.ReconnectDelay, "reconnect-delay", cfg.ReconnectDelay, "delay before broker reconnect attempts")
	root.Flags().DurationVar(&cfg.RestartDelay, "restart-delay", cfg.RestartDelay, "delay before the fatal restart")

	root.Flags().BoolVar(&cfg.WatchCredentials, "watch-credentials", cfg.WatchCredentials, "stop the agent when credential files rotate")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("telemship")
		os.Exit(1)
	}
}
