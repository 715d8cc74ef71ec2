package filesystem

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsbrowser/internal/shared/paths"
)

// ErrAccessDenied is returned when a path resolves outside the accessor root.
// It is a hard failure: callers must not convert it into a soft result.
var ErrAccessDenied = errors.New("access denied: directory traversal attempt")

// Accessor serves read-only views of a directory tree rooted at a fixed path
type Accessor struct {
	root   string
	logger *zap.Logger
}

// Option configures an Accessor
type Option func(*Accessor)

// WithLogger sets the accessor's logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Accessor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an accessor rooted at root. The root is made absolute once
// and never changes afterwards.
func New(root string, opts ...Option) (*Accessor, error) {
	canonical, err := paths.Canonical(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return nil, fmt.Errorf("invalid root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid root: %s is not a directory", canonical)
	}

	a := &Accessor{
		root:   canonical,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Root returns the absolute root directory
func (a *Accessor) Root() string {
	return a.root
}
