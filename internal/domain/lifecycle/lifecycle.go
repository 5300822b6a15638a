package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown operations such as database
// pings and graceful server drains.
const DefaultTimeout = 10 * time.Second
