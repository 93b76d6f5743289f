// Package credwatcher provides credential file monitoring for telemship.
// When enabled, it watches the device certificate, private key, and root
// CA files for changes and asks the agent to stop so it can be restarted
// with the rotated credentials. Credentials are loaded once at startup,
// so a restart is the only way to pick up new files.
package credwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	telemship "github.com/edge-labs/telemship"
)

// Plugin implements credential rotation detection.
// It monitors the credential files configured on the agent and requests
// a stop when any of them is rewritten.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration

	// Runtime state
	paths       []string
	logger      telemship.Logger
	requestStop func(reason string)
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	debounce    *time.Timer
}

// Config holds configuration options for the credential watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// requesting a stop. Rotation tooling often rewrites several files
	// in quick succession.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new credential watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "credwatcher"
}

// Initialize sets up the plugin and starts the file watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg telemship.PluginConfig) error {
	p.mu.Lock()
	p.logger = cfg.Logger
	p.requestStop = cfg.RequestStop
	p.paths = nil
	for _, path := range []string{cfg.ClientCertPath, cfg.PrivateKeyPath, cfg.RootCAPath} {
		if path != "" {
			p.paths = append(p.paths, path)
		}
	}
	p.mu.Unlock()

	if len(p.paths) == 0 {
		p.logger.Warn("credential watcher disabled: no credential paths configured")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("credential watcher plugin initialized")

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the credential watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// watchLoop watches for credential file changes.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("credential watcher: failed to create watcher", telemship.LogField{Key: "error", Value: err})
		return
	}
	defer watcher.Close()

	// Watch the containing directories. Rotation tooling typically
	// replaces files by rename, which drops a watch placed on the file
	// itself.
	watched := map[string]bool{}
	for _, path := range p.paths {
		dir := filepath.Dir(path)
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			p.logger.Error("credential watcher: failed to watch directory",
				telemship.LogField{Key: "dir", Value: dir},
				telemship.LogField{Key: "error", Value: err})
			continue
		}
		watched[dir] = true
	}
	if len(watched) == 0 {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !p.isCredentialPath(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p.logger.Info("credential watcher: file changed",
				telemship.LogField{Key: "path", Value: event.Name})
			p.debounceStop()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("credential watcher: watcher error", telemship.LogField{Key: "error", Value: err})
		}
	}
}

func (p *Plugin) isCredentialPath(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, path := range p.paths {
		if filepath.Clean(name) == filepath.Clean(path) {
			return true
		}
	}
	return false
}

func (p *Plugin) debounceStop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		p.requestStop("credentials rotated")
	})
}
