package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/MedMaalej/copybara/internal/config"
	"github.com/MedMaalej/copybara/internal/output"
	"github.com/MedMaalej/copybara/internal/transform"
)

// Context provides access to configuration and output for commands
type Context struct {
	Config *config.Config
	Splog  *output.Splog
}

// NewContext creates a new context with the given configuration
func NewContext(cfg *config.Config, splog *output.Splog) *Context {
	if splog == nil {
		splog = output.NewSplog()
	}
	return &Context{
		Config: cfg,
		Splog:  splog,
	}
}

// GetContext loads the configuration at configPath, or the config file of the
// working directory when configPath is empty, and creates a logger writing to w.
func GetContext(configPath string, w io.Writer) (*Context, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = config.FindConfigFile(wd)
		if configPath == "" {
			return nil, fmt.Errorf("no %s found in %s", config.ConfigFileName, wd)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	opts := cfg.SplogOptions()
	opts.Writer = w
	opts.Debug = opts.Debug || os.Getenv("DEBUG") != ""
	splog, err := output.NewSplogWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return NewContext(cfg, splog), nil
}

// Chain builds the configured transformations, reversed when reverse is set
func (c *Context) Chain(reverse bool) (*transform.Chain, error) {
	chain, err := c.Config.BuildChain()
	if err != nil {
		return nil, err
	}
	if !reverse {
		return chain, nil
	}
	return chain.ReverseChain()
}

// Close releases the logger
func (c *Context) Close() error {
	return c.Splog.Close()
}
