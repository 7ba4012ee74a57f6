package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-minimax/internal/domain"
)

const writeWait = 10 * time.Second

// ConnectionManager tracks one socket per game session.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// gorilla connections support one concurrent writer; the machine's worker
	// goroutine and the read loop both send.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[gameID]; exists {
		oldConn.Close()
	}
	cm.connections[gameID] = conn
	cm.writeMu[gameID] = &sync.Mutex{}
}

// RemoveConnection closes and forgets the session's socket.
func (cm *ConnectionManager) RemoveConnection(gameID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[gameID]; exists {
		conn.Close()
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

func (cm *ConnectionManager) lookup(gameID string) (*websocket.Conn, *sync.Mutex, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	return conn, mu, exists && muExists
}

// SendMessage writes message as JSON. Messages for closed sessions are
// dropped.
func (cm *ConnectionManager) SendMessage(gameID string, message any) error {
	conn, mu, ok := cm.lookup(gameID)
	if !ok {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

func (cm *ConnectionManager) SendError(gameID, message string) error {
	return cm.SendMessage(gameID, domain.ErrorMessage{Type: "error", Message: message})
}

func (cm *ConnectionManager) Ping(gameID string) error {
	conn, mu, ok := cm.lookup(gameID)
	if !ok {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
