package cli

import (
	"os"
	"strconv"
	"time"
)

// seedFromEnvOrTime returns WFC_SEED parsed as an int64 when set, so runs
// can be reproduced across invocations; otherwise it derives a seed from
// the wall clock.
func seedFromEnvOrTime() int64 {
	if raw := os.Getenv("WFC_SEED"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	}
	return time.Now().UnixNano()
}
