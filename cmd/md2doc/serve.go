package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	md2doc "github.com/alnah/go-md2doc"
)

// Server defaults.
const (
	defaultAddr       = ":3000"
	defaultStoreDir   = "."
	defaultOutputDir  = "."
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// validID restricts identifiers to names that cannot escape the store.
var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// fileConverter is the part of *md2doc.Converter the server needs.
type fileConverter interface {
	ConvertFile(ctx context.Context, inputPath, outputPath, format string) (*md2doc.Result, error)
}

// Compile-time interface implementation check.
var _ fileConverter = (*md2doc.Converter)(nil)

// convertServer serves conversions of <storeDir>/<id>.md.
type convertServer struct {
	conv      fileConverter
	storeDir  string
	outputDir string
	metrics   *metrics
	logger    *slog.Logger
}

// convertResponse is the JSON body of /api/convert.
type convertResponse struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Format  string `json:"format,omitempty"`
	Tier    string `json:"tier,omitempty"`
	Output  string `json:"output,omitempty"`
	Message string `json:"message,omitempty"`
}

// newHandler wires the routes. reg backs /metrics.
func newHandler(s *convertServer, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/api/convert/{id}/{format}", s.convert)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return r
}

func (s *convertServer) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

// convert handles GET /api/convert/{id}/{format}.
func (s *convertServer) convert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := chi.URLParam(r, "format")

	if !validID.MatchString(id) {
		s.reply(w, http.StatusBadRequest, convertResponse{Status: "error", Message: "invalid id"})
		return
	}
	format, err := md2doc.ParseFormat(token)
	if err != nil {
		s.reply(w, http.StatusBadRequest, convertResponse{Status: "error", ID: id, Message: err.Error()})
		return
	}

	input := filepath.Join(s.storeDir, id+".md")
	outName := id + format.Extension()
	output := filepath.Join(s.outputDir, outName)

	start := time.Now()
	res, err := s.conv.ConvertFile(r.Context(), input, output, format.String())
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.observe(format.String(), "", err, elapsed)
		status := http.StatusInternalServerError
		if errors.Is(err, md2doc.ErrReadInput) {
			status = http.StatusNotFound
		}
		s.logger.Error("conversion request failed", "id", id, "format", format.String(), "error", err)
		s.reply(w, status, convertResponse{
			Status:  "error",
			ID:      id,
			Format:  format.String(),
			Message: fmt.Sprintf("Conversion to %s failed", format.Upper()),
		})
		return
	}

	s.metrics.observe(format.String(), res.Tier.String(), nil, elapsed)
	s.reply(w, http.StatusOK, convertResponse{
		Status:  "success",
		ID:      id,
		Format:  format.String(),
		Tier:    res.Tier.String(),
		Output:  outName,
		Message: fmt.Sprintf("Conversion to %s successful", format.Upper()),
	})
}

func (s *convertServer) reply(w http.ResponseWriter, status int, body convertResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// runServeCmd starts the HTTP server and blocks until SIGINT/SIGTERM.
func runServeCmd(args []string, env *Environment) int {
	flags, _, err := parseServeFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printServeUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runServe(ctx, flags, env, nil); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runServe serves until ctx is done, then shuts down gracefully.
// When ready is non-nil it receives the bound address once listening.
func runServe(ctx context.Context, flags *serveFlags, env *Environment, ready chan<- string) error {
	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if err := validate(cfg); err != nil {
		return err
	}

	logger := newLogger(cfg, flags.common, env.Stderr)
	conv, err := newConverter(cfg, logger, env)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	reg := prometheus.NewRegistry()
	srv := &convertServer{
		conv:      conv,
		storeDir:  orDefault(cfg.Server.StoreDir, defaultStoreDir),
		outputDir: orDefault(cfg.Server.OutputDir, defaultOutputDir),
		metrics:   newMetrics(reg),
		logger:    logger,
	}

	return listenAndServe(ctx, orDefault(cfg.Server.Addr, defaultAddr), newHandler(srv, reg), logger, ready)
}

func listenAndServe(ctx context.Context, addr string, h http.Handler, logger *slog.Logger, ready chan<- string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	httpSrv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Serve(ln) }()

	logger.Info("server listening", "addr", ln.Addr().String())
	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
