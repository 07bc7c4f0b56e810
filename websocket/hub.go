package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Conn is the slice of a websocket connection the hub uses. Satisfied by
// *websocket.Conn.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is a websocket subscriber watching one payment's lifecycle.
type Client struct {
	TxRef string
	Conn  Conn
}

// StatusUpdate is pushed to subscribers when the orchestrator moves a payment.
type StatusUpdate struct {
	TxRef   string `json:"tx_ref"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

var clients = make(map[string][]Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan StatusUpdate, 16)

func init() {
	go RunHub()
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Payment watcher registered for %s", client.TxRef)
			clientsMu.Lock()
			clients[client.TxRef] = append(clients[client.TxRef], client.Conn)
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Payment watcher unregistered for %s", client.TxRef)
			clientsMu.Lock()
			conns := clients[client.TxRef]
			for i, conn := range conns {
				if conn == client.Conn {
					clients[client.TxRef] = append(conns[:i], conns[i+1:]...)
					break
				}
			}
			if len(clients[client.TxRef]) == 0 {
				delete(clients, client.TxRef)
			}
			clientsMu.Unlock()
		case update := <-Broadcast:
			clientsMu.Lock()
			conns := clients[update.TxRef]
			alive := conns[:0]
			for _, conn := range conns {
				if err := conn.WriteJSON(update); err != nil {
					log.Printf("Error sending payment update for %s: %v", update.TxRef, err)
					conn.Close()
					continue
				}
				alive = append(alive, conn)
			}
			if len(alive) == 0 {
				delete(clients, update.TxRef)
			} else {
				clients[update.TxRef] = alive
			}
			clientsMu.Unlock()
		}
	}
}

// BroadcastStatus hands a status transition to the hub without blocking the
// caller; updates are dropped if the hub is backed up.
func BroadcastStatus(txRef, status, message string) {
	select {
	case Broadcast <- StatusUpdate{TxRef: txRef, Status: status, Message: message}:
	default:
		log.Printf("Payment status broadcast dropped for %s", txRef)
	}
}

// Upgrade gates websocket routes behind the upgrade handshake.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// PaymentSocket subscribes the connection to one transaction ref and holds it
// open until the peer disconnects.
func PaymentSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{TxRef: conn.Params("transactionId"), Conn: conn}
		Register <- client
		defer func() {
			Unregister <- client
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
