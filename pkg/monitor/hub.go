// Package monitor serves the state of a running machine to remote clients
// over websockets. Every published frame the hub broadcasts the CPU
// registers and a brotli compressed image of memory, and clients may send
// button presses back.
package monitor

import (
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/go8080/internal/cpu"
	"github.com/thelolagemann/go8080/internal/types"
	"github.com/thelolagemann/go8080/pkg/log"
	"github.com/thelolagemann/go8080/pkg/utils"
)

const (
	// DefaultAddress is the address ListenAndServe uses when given none.
	DefaultAddress = ":8090"

	cacheSize       = 16
	maxQuality      = 11
	infoInterval    = time.Second
	broadcastBuffer = 64
)

// InputEvent is a button press or release sent by a client.
type InputEvent struct {
	Client  uint8
	Button  uint8
	Pressed bool
}

// message is queued for broadcast. A cached message refers to a slot of
// the cache generation it was created in, and is dropped if the cache has
// been reset since.
type message struct {
	data   []byte
	epoch  uint64
	cached bool
}

// Hub tracks the connected clients and fans messages out to them.
type Hub struct {
	clients map[*Client]bool

	broadcast            chan message
	register, unregister chan *Client
	inputs               chan InputEvent
	done                 chan struct{}

	compression      bool
	compressionLevel int
	cache            *cache
	epoch            uint64
	currentID        uint8

	log log.Logger
	mu  sync.Mutex
}

// HubOpt configures a Hub.
type HubOpt func(h *Hub)

// WithLogger sets the logger of the hub.
func WithLogger(l log.Logger) HubOpt {
	return func(h *Hub) {
		h.log = l
	}
}

// WithCompression sets whether memory is compressed, and at which brotli
// quality.
func WithCompression(enabled bool, level int) HubOpt {
	return func(h *Hub) {
		h.compression = enabled
		h.compressionLevel = utils.Clamp(0, level, maxQuality)
	}
}

// NewHub returns a Hub. Run must be called for it to do anything.
func NewHub(opts ...HubOpt) *Hub {
	h := &Hub{
		clients:          make(map[*Client]bool),
		broadcast:        make(chan message, broadcastBuffer),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		inputs:           make(chan InputEvent, 64),
		done:             make(chan struct{}),
		compression:      true,
		compressionLevel: 5,
		cache:            newCache(cacheSize),
		log:              log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Inputs returns the button events sent by clients. Events are dropped if
// they are not received promptly.
func (h *Hub) Inputs() <-chan InputEvent {
	return h.inputs
}

// ServeHTTP upgrades the request to a websocket and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := h.newClient(conn, r)
	c.Send <- []byte{ClientInfo, c.ID, h.info(), uint8(h.level())}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.ReadPump()
	go c.WritePump()
}

// Run handles registration and broadcasting until ctx is cancelled, at
// which point every client is disconnected.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	t := time.NewTicker(infoInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.Send)
			}
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case msg := <-h.broadcast:
			h.deliver(msg)
		case <-t.C:
			data := []byte{ServerInfo}
			for c := range h.clients {
				latency := make([]byte, 2)
				binary.LittleEndian.PutUint16(latency, c.Latency())
				data = append(data, c.ID)
				data = append(data, latency...)
			}
			h.send(message{data: data})
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.clients[c] = true
	// the new client has nothing cached
	h.mu.Lock()
	h.invalidate()
	h.mu.Unlock()
	h.log.Infof("monitor client %d connected from %s", c.ID, c.RemoteAddr)
}

func (h *Hub) removeClient(c *Client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		h.log.Infof("monitor client %d disconnected", c.ID)
	}
}

// deliver queues msg for every client, dropping clients that are too slow.
func (h *Hub) deliver(msg message) {
	if msg.cached {
		h.mu.Lock()
		stale := msg.epoch != h.epoch
		h.mu.Unlock()
		if stale {
			return
		}
	}

	for c := range h.clients {
		select {
		case c.Send <- msg.data:
		default:
			delete(h.clients, c)
			close(c.Send)
		}
	}
}

// invalidate forgets the cache, and with it every queued cached message.
// h.mu must be held.
func (h *Hub) invalidate() {
	h.cache.reset()
	h.epoch++
}

// Publish broadcasts the CPU state and memory to every client. Memory
// already held in the clients' caches is sent as its slot number. Publish
// never blocks, a frame is dropped if the hub is backed up, in which case
// the memory is not cached.
func (h *Hub) Publish(s cpu.Snapshot, memory []byte) error {
	h.send(message{data: EncodeSnapshot(s)})
	if memory == nil {
		return nil
	}

	hash := xxhash.Sum64(memory)

	h.mu.Lock()
	epoch := h.epoch
	slot := h.cache.index(hash)
	if slot >= 0 {
		h.mu.Unlock()
		h.send(message{data: []byte{MemoryCached, uint8(slot)}, epoch: epoch, cached: true})
		return nil
	}
	slot = h.cache.next()
	compress, level := h.compression, h.compressionLevel
	h.mu.Unlock()

	output := memory
	if compress {
		var err error
		output, err = cbrotli.Encode(memory, cbrotli.WriterOptions{
			Quality: level,
			LGWin:   0,
		})
		if err != nil {
			return err
		}
	}

	data := make([]byte, 0, len(output)+3)
	data = append(data, Memory, uint8(slot), boolByte(compress))
	if !h.send(message{data: append(data, output...), epoch: epoch}) {
		return nil
	}

	h.mu.Lock()
	if h.epoch == epoch {
		h.cache.store(slot, hash)
	}
	h.mu.Unlock()
	return nil
}

// ListenAndServe serves the hub at addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddress
	}

	mux := http.NewServeMux()
	mux.Handle("/", h)
	srv := &http.Server{Addr: addr, Handler: mux}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	h.log.Infof("monitor listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// send queues msg for broadcast, reporting whether there was room.
func (h *Hub) send(msg message) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		h.log.Debugf("monitor backed up, dropped message type %d", msg.data[0])
		return false
	}
}

func (h *Hub) level() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.compressionLevel
}

// info returns a byte of information containing the hub settings:
//
//	Bit 0: Compression enabled
func (h *Hub) info() byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	var info uint8
	if h.compression {
		info |= types.Bit0
	}
	return info
}

// handle applies a message received from a client.
func (h *Hub) handle(c *Client, message []byte) {
	if len(message) < 2 {
		return
	}

	switch message[0] {
	case Input:
		if len(message) < 3 {
			return
		}
		select {
		case h.inputs <- InputEvent{Client: c.ID, Button: message[1], Pressed: message[2] != 0}:
		default:
			h.log.Debugf("dropped input from client %d", c.ID)
		}
	case Compression:
		h.mu.Lock()
		h.compression = message[1] == 1
		h.invalidate()
		h.mu.Unlock()
	case CompressionLevel:
		h.mu.Lock()
		h.compressionLevel = int(utils.Clamp(0, message[1], maxQuality))
		h.mu.Unlock()
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
