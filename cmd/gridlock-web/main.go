package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	httpadapter "svw.info/gridlock/internal/adapters/http"
	"svw.info/gridlock/internal/generator"
	"svw.info/gridlock/internal/infrastructure/storage"
	"svw.info/gridlock/internal/usecase"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": sw.status,
			"bytes":  sw.bytes,
			"dur":    time.Since(start).Round(time.Millisecond),
		}).Info("http")
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	persist := flag.String("persist-path", "./data", "save directory")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	gridSize := flag.Int("grid-size", 9, "generated grid side length")
	boxW := flag.Int("box-width", 3, "generated box width")
	boxH := flag.Int("box-height", 3, "generated box height")
	flag.Parse()

	lvl, err := logrus.ParseLevel(*levelStr)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	_ = os.MkdirAll(*persist, 0o755)

	// Wire providers -> use cases -> HTTP adapter
	g := generator.NewUniqueGenerator(*gridSize, *boxW, *boxH)
	st := storage.NewFS(*persist)
	uc := usecase.NewService(g, st)
	h := httpadapter.New(uc)

	mux := http.NewServeMux()
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logrus.WithFields(logrus.Fields{"addr": *addr, "persist": *persist}).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Error("server error")
		os.Exit(1)
	}
}
