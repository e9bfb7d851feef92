package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 64

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 16

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 8
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// EnrichWaitTimeout bounds how long a watcher waits for a resolution to enrich
	EnrichWaitTimeout = 90 * time.Second
)

// Event types for SSE
const (
	// EventTypeConnected is the first event on every stream
	EventTypeConnected = "connected"

	// EventTypeCraftEnriched carries a fully resolved recipe tree
	EventTypeCraftEnriched = "craft.enriched"

	// EventTypeCraftStale is sent when an enrichment was superseded and discarded
	EventTypeCraftStale = "craft.stale"

	// EventTypeSearchCompleted is sent after every search with its summary
	EventTypeSearchCompleted = "search.completed"

	// EventTypeStateChanged is sent when the selected server, datacenter or language changes
	EventTypeStateChanged = "state.changed"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes filters a stream to a comma separated list of event types
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgWatchFailed        = "Resolution enrichment did not complete"
)
