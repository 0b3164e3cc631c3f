package gateway

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	PosSvcURL string
	StaticDir string
}

// Gateway is the single origin the browser talks to. API calls go to pos-svc
// with cookies intact; everything else is served from the frontend build,
// including the receipt page the bill QR codes point at.
type Gateway struct {
	config Config
	client HTTPClient
	logger *zap.Logger
}

func NewGateway(config Config, client HTTPClient, logger *zap.Logger) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		logger: logger,
	}
}

// hopHeaders apply to a single connection and are not forwarded.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.logger.Error("failed to build upstream request", zap.String("url", url), zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}
	req.Header = r.Header.Clone()
	for _, h := range hopHeaders {
		req.Header.Del(h)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if prior := req.Header.Get("X-Forwarded-For"); prior != "" {
			host = prior + ", " + host
		}
		req.Header.Set("X-Forwarded-For", host)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("upstream unavailable", zap.String("url", url), zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	for _, h := range hopHeaders {
		w.Header().Del(h)
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Warn("failed to copy upstream response", zap.String("url", url), zap.Error(err))
	}
}

func (g *Gateway) APIHandler(w http.ResponseWriter, r *http.Request) {
	g.logger.Debug("proxy", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	g.ProxyRequest(w, r, g.config.PosSvcURL)
}

// FrontendHandler serves files from the static directory. Unknown paths fall
// back to index.html so client-side routes such as /user/change-password/{token}
// resolve.
func (g *Gateway) FrontendHandler(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(g.config.StaticDir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	http.ServeFile(w, r, filepath.Join(g.config.StaticDir, "index.html"))
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.APIHandler)
	r.PathPrefix("/").HandlerFunc(g.FrontendHandler).Methods("GET", "HEAD")
	return r
}
