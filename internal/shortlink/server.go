// Package shortlink serves HTTP redirects for stored short links.
package shortlink

import (
	"context"
	"log"
	"net/http"
	"strings"

	"mlvsbot/internal/storage"
)

// RunServer starts the redirect server on addr and blocks until ctx is
// cancelled or the listener fails.
func RunServer(ctx context.Context, store *storage.Storage, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		code := strings.Trim(r.URL.Path, "/")
		if code == "" || strings.Contains(code, "/") {
			http.NotFound(w, r)
			return
		}

		link, err := store.ShortLink(code)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if err := store.IncrementClicks(code); err != nil {
			log.Printf("[WARN] Error counting click for '%s': %v", code, err)
		}

		http.Redirect(w, r, link.Original, http.StatusSeeOther)
	})

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		log.Println("[INFO] Shutting down shortlink server...")
		srv.Shutdown(context.Background()) //nolint:errcheck
	}()

	log.Printf("[INFO] Shortlink redirect server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		// Keep the process alive; the bot still works without redirects.
		log.Printf("[ERR] Shortlink server exited: %v", err)
	}
}
