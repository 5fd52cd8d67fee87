package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/export"
	"github.com/vovakirdan/zero/internal/logging"
	"github.com/vovakirdan/zero/internal/raster"
	"github.com/vovakirdan/zero/internal/registry"
)

// Request limits. MaxDimension bounds the encoded image, after upscaling.
const (
	MaxDimension = 4096
	MaxFrames    = 3600
	writeWait    = 10 * time.Second
)

var errBadParam = errors.New("bad parameter")

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

// frameParams are the query parameters of a frame or stream request.
type frameParams struct {
	width, height int
	frames        int
	scale         int
}

// parseFrameParams reads w, h, frames and scale, falling back to the
// configured frame size, one update and scale 1.
func parseFrameParams(q url.Values, rc core.RuntimeConfig) (frameParams, error) {
	p := frameParams{width: rc.Width, height: rc.Height, frames: 1, scale: 1}

	fields := []struct {
		name   string
		dst    *int
		lo, hi int
	}{
		{"w", &p.width, 1, MaxDimension},
		{"h", &p.height, 1, MaxDimension},
		{"frames", &p.frames, 0, MaxFrames},
		{"scale", &p.scale, 1, export.MaxScale},
	}
	for _, f := range fields {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < f.lo || v > f.hi {
			return p, fmt.Errorf("%w: %s must be an integer in [%d, %d]", errBadParam, f.name, f.lo, f.hi)
		}
		*f.dst = v
	}

	if p.width*p.scale > MaxDimension || p.height*p.scale > MaxDimension {
		return p, fmt.Errorf("%w: %dx%d at scale %d exceeds %d pixels per side",
			errBadParam, p.width, p.height, p.scale, MaxDimension)
	}
	return p, nil
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	scene, err := registry.Create(vars["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	format, err := export.ParseFormat(vars["format"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := parseFrameParams(r.URL.Query(), s.config.Runtime)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rc := s.config.Runtime.WithSize(p.width, p.height)
	img := export.Render(scene, rc, p.frames)

	data, err := export.Bytes(img, format, p.scale)
	if err != nil {
		logging.Error(s.logger, "Encode", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Client may have gone away
	w.Write(data)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	scene, err := registry.Create(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	p, err := parseFrameParams(r.URL.Query(), s.config.Runtime)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Streams outlive the server's write timeout
	//nolint:errcheck // Not every writer supports deadlines
	http.NewResponseController(w).SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	// Clients only listen; CloseRead handles their close frame
	ctx := conn.CloseRead(r.Context())

	s.logger.Debug("stream started", "scene", scene.ID(), "size", fmt.Sprintf("%dx%d", p.width, p.height))
	err = s.stream(ctx, conn, scene, s.config.Runtime.WithSize(p.width, p.height), p.scale)
	switch {
	case err == nil, errors.Is(err, context.Canceled),
		websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
		conn.Close(websocket.StatusNormalClosure, "")
	default:
		s.logger.Debug("stream ended", "scene", scene.ID(), "error", err)
	}
}

// stream sends one PNG frame per tick until ctx ends or a write fails.
func (s *Server) stream(ctx context.Context, conn *websocket.Conn, scene registry.Scene, rc core.RuntimeConfig, scale int) error {
	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	r := raster.NewRenderer(raster.NewFrame(rc.Width, rc.Height), rc.Width, rc.Height)
	scene.Reset(rc)
	input := core.NewInputFrame()

	for {
		scene.Draw(r)
		data, err := export.Bytes(r.Image(), export.PNG, scale)
		if err != nil {
			return err
		}

		writeCtx, cancel := context.WithTimeout(ctx, writeWait)
		err = conn.Write(writeCtx, websocket.MessageBinary, data)
		cancel()
		if err != nil {
			return err
		}

		select {
		case <-ticker.C:
			scene.Update(input)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Headers are already sent
	json.NewEncoder(w).Encode(data)
}
