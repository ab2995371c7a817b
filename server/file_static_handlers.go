package server

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed static/*
var staticFiles embed.FS

var assetsFS = mustSub(staticFiles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("Failed to create " + dir + " sub filesystem: " + err.Error())
	}
	return sub
}

// serveAssetHandler serves /css/{file} and /js/{file} from the embedded assets
func (s *Server) serveAssetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if err := streamAsset(w, name); err != nil {
			logError(r.Method, r.URL.Path, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
		}
	}
}

func streamAsset(w http.ResponseWriter, name string) error {
	if name == "." || !fs.ValidPath(name) {
		return fmt.Errorf("invalid asset path %q", name)
	}
	data, err := fs.ReadFile(assetsFS, name)
	if err != nil {
		return fmt.Errorf("read asset %s: %w", name, err)
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if strings.HasPrefix(ctype, "text/") && !strings.Contains(strings.ToLower(ctype), "charset=") {
		ctype += "; charset=utf-8"
	}
	w.Header().Set("Content-Type", ctype)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write asset %s: %w", name, err)
	}
	return nil
}
