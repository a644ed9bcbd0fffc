package stream

import (
	"bytes"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/adrianov/snake-sub000/internal/game"
	"github.com/adrianov/snake-sub000/internal/store"
)

const (
	pngCellSize  = 32
	pushInterval = 100 * time.Millisecond
	maxPNGWidth  = 2048
)

// ScoreSource is the slice of the run store the server reads.
type ScoreSource interface {
	TopScores(n int) ([]store.Run, error)
}

// Server exposes the spectator endpoints. Store may be nil; /api/scores then
// returns an empty list.
type Server struct {
	feed     *Feed
	scores   ScoreSource
	upgrader websocket.Upgrader
}

func NewServer(feed *Feed, scores ScoreSource) *Server {
	return &Server{
		feed:   feed,
		scores: scores,
		upgrader: websocket.Upgrader{
			// Spectator data is public and read-only.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router builds the gin handler tree.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", s.handleIndex)
	r.GET("/api/state", s.handleState)
	r.GET("/api/scores", s.handleScores)
	r.GET("/board.png", s.handleBoardPNG)
	r.GET("/ws", s.handleWS)
	return r
}

// ListenAndServe blocks serving the spectator endpoints on addr.
func (s *Server) ListenAndServe(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(viewerHTML))
}

func (s *Server) handleState(c *gin.Context) {
	snap, ok := s.feed.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no game running yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleScores(c *gin.Context) {
	n := 10
	if v, err := strconv.Atoi(c.DefaultQuery("n", "10")); err == nil && v > 0 && v <= 100 {
		n = v
	}
	if s.scores == nil {
		c.JSON(http.StatusOK, []store.Run{})
		return
	}
	runs, err := s.scores.TopScores(n)
	if err != nil {
		log.Printf("stream: top scores: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "score query failed"})
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) handleBoardPNG(c *gin.Context) {
	snap, ok := s.feed.Latest()
	if !ok {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	img := renderBoard(snap)
	if v, err := strconv.Atoi(c.Query("w")); err == nil && v > 0 && v <= maxPNGWidth {
		img = imaging.Resize(img, v, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("stream: encode board png: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Drain client frames so pings and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()
	for range ticker.C {
		snap, ok := s.feed.Latest()
		if !ok {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}
}

// renderBoard draws a snapshot the way the GL renderer lays the board out:
// checkerboard field, food dots, rounded snake with a brighter head.
func renderBoard(snap game.Snapshot) *image.NRGBA {
	n := snap.TileCount
	if n <= 0 {
		n = game.DefaultTileCount
	}
	size := n * pngCellSize
	dc := gg.NewContext(size, size)

	setRGB := func(c game.RGB) {
		dc.SetRGB255(int(c.R), int(c.G), int(c.B))
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				setRGB(game.Palette.BoardLight)
			} else {
				setRGB(game.Palette.BoardDark)
			}
			dc.DrawRectangle(float64(x*pngCellSize), float64(y*pngCellSize),
				pngCellSize, pngCellSize)
			dc.Fill()
		}
	}

	radius := float64(pngCellSize) * 0.42
	for _, f := range snap.Food {
		setRGB(f.Kind.Color())
		dc.DrawCircle(
			(float64(f.Pos.X)+0.5)*pngCellSize,
			(float64(f.Pos.Y)+0.5)*pngCellSize,
			radius)
		dc.Fill()
	}

	for i := len(snap.Segments) - 1; i >= 0; i-- {
		seg := snap.Segments[i]
		if i == 0 {
			setRGB(game.Palette.SnakeHead)
		} else {
			setRGB(game.Palette.SnakeBody)
		}
		pad := float64(pngCellSize) * 0.06
		dc.DrawRoundedRectangle(
			float64(seg.X)*pngCellSize+pad,
			float64(seg.Y)*pngCellSize+pad,
			pngCellSize-2*pad, pngCellSize-2*pad,
			float64(pngCellSize)*0.25)
		dc.Fill()
	}

	return imaging.Clone(dc.Image())
}
