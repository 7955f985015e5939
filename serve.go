package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/radovskyb/watcher"
)

const liveReloadPath = "/_livereload"

// newServer serves the built site in dir. Pages that don't exist get the
// site's own 404.html. A non-nil hub is mounted at /_livereload.
func newServer(dir string, hub *reloadHub) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusNotFound {
			if page, rerr := os.ReadFile(filepath.Join(dir, "404.html")); rerr == nil {
				_ = c.HTMLBlob(http.StatusNotFound, page)
				return
			}
		}
		e.DefaultHTTPErrorHandler(err, c)
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if verbose {
				log.Printf("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, liveReloadPath)
		},
	}))

	if hub != nil {
		e.GET(liveReloadPath, hub.handle)
	}
	e.Static("/", dir)
	return e
}

// serveSite serves dir on addr until ctx is done.
func serveSite(ctx context.Context, dir, addr string, hub *reloadHub) error {
	e := newServer(dir, hub)

	errc := make(chan error, 1)
	go func() {
		log.Printf("Serving %v on %v", dir, addr)
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hub.closeAll()
	return e.Shutdown(shutdownCtx)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadHub tracks the browsers connected to /_livereload and tells them
// to reload after a rebuild.
type reloadHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newReloadHub() *reloadHub {
	return &reloadHub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *reloadHub) handle(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("livereload: websocket upgrade: %v", err)
		return nil
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Nothing is expected from the browser; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("livereload: websocket read: %v", err)
			}
			return nil
		}
	}
}

func (h *reloadHub) len() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *reloadHub) broadcast() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *reloadHub) closeAll() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

// rerenderOnChange polls the site's input directories and calls rebuild
// after every change until ctx is done.
func rerenderOnChange(ctx context.Context, conf *SiteConf, rebuild func() error) error {
	w := watcher.New()
	w.SetMaxEvents(1)

	for _, dir := range []string{conf.ContentDir, conf.AssetsDir, conf.StaticFilesDir} {
		if !dirExists(dir) {
			continue
		}
		log.Println("Watching " + dir + " for changes...")
		if err := w.AddRecursive(dir); err != nil {
			return err
		}
	}

	go func() {
		stop := ctx.Done()
		for {
			select {
			case ev := <-w.Event:
				if verbose {
					log.Println("Changed:", ev.Path)
				}
				if err := rebuild(); err != nil {
					log.Println(err)
				}
			case err := <-w.Error:
				log.Println(err)
			case <-w.Closed:
				return
			case <-stop:
				stop = nil
				// Close waits for Start, which may be sending us an event.
				go w.Close()
			}
		}
	}()

	return w.Start(200 * time.Millisecond)
}
