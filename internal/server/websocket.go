package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/mazecarver/internal/logger"
	"github.com/lawnchairsociety/mazecarver/internal/session"
)

const writeWait = 10 * time.Second

// handleWebSocketUpgrade upgrades an HTTP connection to WebSocket.
func (s *Server) handleWebSocketUpgrade(ctx *gin.Context) {
	clientIP := getRealIP(ctx.Request)

	// Check connection limits before upgrading
	if !s.connLimiter.TryAcquire(clientIP) {
		logger.Warning("WebSocket connection rejected - limit exceeded",
			"remote_addr", ctx.Request.RemoteAddr,
			"client_ip", clientIP)
		ctx.String(http.StatusTooManyRequests, "Too many connections. Please try again later.")
		return
	}

	wsConn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// The upgrader has already written the error response.
		logger.Warning("WebSocket upgrade failed", "error", err)
		s.connLimiter.Release(clientIP)
		return
	}

	s.handleWebSocketConnection(wsConn, clientIP)
}

// handleWebSocketConnection answers maze requests until the client hangs up.
// Each request is streamed as one message per row followed by a done message.
func (s *Server) handleWebSocketConnection(wsConn *websocket.Conn, clientIP string) {
	defer func() {
		s.connLimiter.Release(clientIP)
		wsConn.Close()
	}()

	if limit := s.cfg.HTTP.WebSocket.MaxMessageSize; limit > 0 {
		wsConn.SetReadLimit(limit)
	}

	logger.Debug("WebSocket client connected", "client_ip", clientIP)

	for {
		_, message, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warning("WebSocket read failed", "client_ip", clientIP, "error", err)
			}
			return
		}

		if err := s.streamMaze(wsConn, message); err != nil {
			var reqErr *requestError
			if !errors.As(err, &reqErr) {
				logger.Warning("WebSocket write failed", "client_ip", clientIP, "error", err)
				return
			}
			if err := writeJSON(wsConn, ErrorMessage{Error: reqErr.Error()}); err != nil {
				return
			}
		}
	}
}

// requestError is a client mistake reported back over the socket.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func (s *Server) streamMaze(wsConn *websocket.Conn, message []byte) error {
	var request StreamRequest
	if err := json.Unmarshal(message, &request); err != nil {
		return &requestError{err: err}
	}

	opts := s.opts
	if request.Width != 0 {
		opts.Width = request.Width
	}
	if request.Height != 0 {
		opts.Height = request.Height
	}

	seed := session.NewSeed(s.seeds)
	if request.Seed != nil {
		seed = *request.Seed
	}

	g, err := s.newGame(opts, seed)
	if err != nil {
		return &requestError{err: err}
	}

	m := g.Maze
	cells := m.Cells()
	for y := 0; y < m.Height(); y++ {
		row := RowMessage{Row: y, Cells: make([]CellDTO, m.Width())}
		for x := 0; x < m.Width(); x++ {
			row.Cells[x] = toCellDTO(m, cells[y*m.Width()+x])
		}
		if err := writeJSON(wsConn, row); err != nil {
			return err
		}
	}

	if err := writeJSON(wsConn, DoneMessage{Done: true, Seed: seed, Fingerprint: m.Fingerprint()}); err != nil {
		return err
	}
	logger.Debugf("Streamed %dx%d maze for seed %d", m.Width(), m.Height(), seed)
	return nil
}

func writeJSON(wsConn *websocket.Conn, v any) error {
	wsConn.SetWriteDeadline(time.Now().Add(writeWait))
	return wsConn.WriteJSON(v)
}
