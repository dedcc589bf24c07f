package cli

import (
	"fmt"
	"os"

	"github.com/codegate-sec/codegate/internal/cache"
	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/scan"
	"github.com/codegate-sec/codegate/internal/secscan"
)

// buildService assembles a scan service from the loaded configuration
// and global flags. Failures to open the cache or history stores
// disable the concern rather than aborting the command.
func buildService() (*scan.Service, error) {
	var hist *history.Store
	if appConfig.History.Enabled {
		if store, err := openHistory(); err == nil {
			hist = store
		} else if verboseFlag {
			fmt.Fprintf(os.Stderr, "history disabled: %v\n", err)
		}
	}
	return assembleService(hist)
}

// assembleService wires the reviewer, cache, and the given history
// store (which may be nil) into a scan service.
func assembleService(hist *history.Store) (*scan.Service, error) {
	reviewer, err := buildReviewer()
	if err != nil {
		return nil, err
	}

	opts := []scan.Option{scan.WithReviewTimeout(timeoutFlag)}

	if appConfig.Cache.Enabled && !noCacheFlag {
		if store, err := cache.New(cache.DefaultDir(), appConfig.Cache.TTL); err == nil {
			opts = append(opts, scan.WithCache(store))
		} else if verboseFlag {
			fmt.Fprintf(os.Stderr, "cache disabled: %v\n", err)
		}
	}

	if hist != nil {
		opts = append(opts, scan.WithHistory(hist))
	}

	return scan.NewService(reviewer, opts...), nil
}

// buildReviewer picks the security review backend. Without an API key
// the scan degrades to static analysis only.
func buildReviewer() (secscan.Source, error) {
	if noLLMFlag {
		return secscan.Disabled{}, nil
	}
	if appConfig.OpenAI.APIKey == "" {
		if verboseFlag {
			fmt.Fprintln(os.Stderr, "no OpenAI API key configured; running static analysis only")
		}
		return secscan.Disabled{}, nil
	}
	return secscan.NewOpenAIScanner(appConfig.OpenAI.APIKey, modelFlag, appConfig.OpenAI.BaseURL)
}

func openHistory() (*history.Store, error) {
	path := appConfig.History.Path
	if path == "" {
		path = history.DefaultPath()
	}
	return history.Open(path)
}
