package dones

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/roach88/dones/internal/conn"
	"github.com/roach88/dones/internal/dburl"
	"github.com/roach88/dones/internal/kstore"
	"github.com/roach88/dones/internal/logstore"
)

// EnvTarget names the environment variable consulted for the default
// target when the registry is constructed without one.
const EnvTarget = "DONES_TARGET"

// Default connection retry parameters for facades the registry builds.
const (
	DefaultRetries = 1
	DefaultDelay   = time.Second
)

// namespacePrefix keeps dones tables and files apart from anything else
// living in the same database or directory.
const namespacePrefix = "dones_"

type registryKey struct {
	ns     string
	target string
}

// Registry hands out one Dones per (namespace, target) for the life of the
// process. The first Get for a pair constructs the facade; later Gets
// return the same value. There is no eviction.
//
// Construct one Registry at startup and pass it to whatever needs markers;
// it replaces the process-global cache such coordination code tends to
// accrete.
type Registry struct {
	defaultTarget string
	retries       int
	delay         time.Duration

	mu      sync.Mutex
	entries map[registryKey]Dones
}

// Option adjusts registry construction.
type Option func(*Registry)

// WithRetry overrides the connection retry parameters used for
// relational facades built by this registry.
func WithRetry(retries int, delay time.Duration) Option {
	return func(r *Registry) {
		r.retries = retries
		r.delay = delay
	}
}

// NewRegistry creates a registry. When defaultTarget is empty the
// DONES_TARGET environment variable is read once, here, so the rest of the
// process never consults the environment.
func NewRegistry(defaultTarget string, opts ...Option) *Registry {
	if defaultTarget == "" {
		defaultTarget = os.Getenv(EnvTarget)
	}
	r := &Registry{
		defaultTarget: defaultTarget,
		retries:       DefaultRetries,
		delay:         DefaultDelay,
		entries:       make(map[registryKey]Dones),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the Dones for a namespace at the registry's default target.
func (r *Registry) Get(ns string) (Dones, error) {
	return r.GetAt(ns, r.defaultTarget)
}

// GetAt returns the Dones for a namespace at an explicit target. Targets
// that parse as a database URL get a relational facade; anything else is
// treated as a directory and gets an append-log facade with the file
// dones_<ns>.log inside it.
func (r *Registry) GetAt(ns, target string) (Dones, error) {
	if ns == "" {
		return nil, fmt.Errorf("empty namespace")
	}
	if target == "" {
		return nil, fmt.Errorf("no target for namespace %q: set %s or pass one explicitly", ns, EnvTarget)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ck := registryKey{ns: ns, target: target}
	if d, ok := r.entries[ck]; ok {
		return d, nil
	}

	d, err := r.build(ns, target)
	if err != nil {
		return nil, err
	}
	r.entries[ck] = d
	return d, nil
}

func (r *Registry) build(ns, target string) (Dones, error) {
	name := namespacePrefix + ns

	if dburl.IsURL(target) {
		cfg, err := dburl.Parse(target)
		if err != nil {
			return nil, err
		}
		driver, dsn, err := cfg.DriverDSN()
		if err != nil {
			return nil, fmt.Errorf("target for namespace %q: %w", ns, err)
		}
		provider := conn.NewProvider(driver, dsn, r.retries, r.delay)
		store, err := kstore.New(provider, name)
		if err != nil {
			return nil, err
		}
		return NewDB(store), nil
	}

	return NewFile(logstore.New(filepath.Join(target, name+".log"))), nil
}
