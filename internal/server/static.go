package server

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/vango-dev/admindash/pkg/middleware"
)

//go:embed assets
var embedded embed.FS

// assetFS is the stylesheet tree served under the configured asset path.
var assetFS, _ = fs.Sub(embedded, "assets")

// assetRelPath returns the file a request under prefix names. It rejects
// traversal, absolute paths and platform separators.
func assetRelPath(prefix, urlPath string) (string, bool) {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	rel, ok := strings.CutPrefix(urlPath, prefix)
	if !ok || rel == "" {
		return "", false
	}
	if strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") || strings.HasPrefix(rel, "/") {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}
	clean := path.Clean(rel)
	if clean != rel || !fs.ValidPath(clean) {
		return "", false
	}
	return clean, true
}

// assets serves the embedded stylesheets.
func (a *App) assets(w http.ResponseWriter, r *http.Request) {
	middleware.SetRouteLabel(r.Context(), "assets")

	rel, ok := assetRelPath(a.cfg.Server.AssetPath, r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := assetFS.Open(rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	http.ServeContent(w, r, rel, info.ModTime(), rs)
}
