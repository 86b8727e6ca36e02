package httpapi

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register the handler. It is
// satisfied by *http.ServeMux and chi routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the field endpoints under basePath on mux and
// returns the registered pattern.
func RegisterRoutes(mux Mux, basePath string, cfg Config) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("httpapi: missing mux")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return "", err
	}
	prefix := "/" + strings.Trim(strings.TrimSpace(basePath), "/")
	if prefix == "/" {
		mux.Handle("/", handler)
		return "/", nil
	}
	pattern := prefix + "/"
	mux.Handle(pattern, http.StripPrefix(prefix, handler))
	return pattern, nil
}
