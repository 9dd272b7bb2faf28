package vec

import (
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var logger = log.NewNopLogger()

// SetLogger installs the logger used for reallocation traces. nil restores
// the no-op logger.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	logger = l
}

func logReallocation(from, to, bytes int) {
	level.Debug(logger).Log(
		"msg", "vector storage reallocated",
		"from_cap", from,
		"to_cap", to,
		"bytes", humanize.Bytes(uint64(bytes)),
	)
}
