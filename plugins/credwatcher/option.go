package credwatcher

import telemship "github.com/edge-labs/telemship"

// WithCredentialWatcher returns a telemship Option that enables
// credential rotation detection. When any watched credential file is
// rewritten, the plugin asks the agent to stop so a supervisor can
// restart it with the new files.
//
// Usage:
//
//	agent, err := telemship.New(cfg,
//	    credwatcher.WithCredentialWatcher(credwatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithCredentialWatcher(cfg Config) telemship.Option {
	plugin := New(cfg)
	return telemship.WithPlugin(plugin)
}

// WithDefaultCredentialWatcher returns a telemship Option that enables
// credential watching with default settings (debounce 100ms).
func WithDefaultCredentialWatcher() telemship.Option {
	return WithCredentialWatcher(DefaultConfig())
}
