package spectate

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// NewMux routes /ws to the hub and answers /healthz.
func NewMux(hub *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe runs the hub and its HTTP endpoint until ctx is done.
func ListenAndServe(ctx context.Context, addr string, hub *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(hub),
		ReadHeaderTimeout: 5 * time.Second,
	}

	hubCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		hub.logger.Info("spectator feed listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	}
}
