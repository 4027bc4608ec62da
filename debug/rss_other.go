//go:build !windows

package debug

import "errors"

var errNoRSS = errors.New("rss not available on this platform")

func processRSS() (uint64, error) { return 0, errNoRSS }
