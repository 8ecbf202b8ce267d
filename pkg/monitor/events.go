package monitor

// Type is the first byte of every message sent to clients.
type Type = uint8

const (
	// Snapshot carries the CPU registers, see EncodeSnapshot.
	Snapshot Type = iota
	// Memory carries a cache slot followed by brotli compressed memory.
	Memory
	// MemoryCached carries the cache slot of memory the client was sent
	// before.
	MemoryCached
	// ClientInfo carries the client's ID and the hub settings.
	ClientInfo
	// ServerInfo carries the ID and average latency of every client.
	ServerInfo
)

// Event is the first byte of every message sent by clients.
type Event = uint8

const (
	_ Event = iota
	// Input presses (state 1) or releases (state 0) a button:
	// [Input, button, state].
	Input
	// Compression toggles memory compression: [Compression, 0|1].
	Compression
	// CompressionLevel sets the brotli quality: [CompressionLevel, 0-11].
	CompressionLevel

	// Closing is sent by a client before it disconnects.
	Closing Event = 255
)
