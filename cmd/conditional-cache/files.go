package main

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/always-cache/conditional"
	"github.com/always-cache/conditional/pkg/etag"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// fileService serves the files in a directory.
type fileService struct {
	dir string
}

// serve returns the file named by the route wildcard. The entity-tag is
// derived from the file's path, size and modification time, so the file
// only needs to be read when the client's copy is outdated.
func (s fileService) serve(r *http.Request, v conditional.RequestValidators) (*conditional.Result, error) {
	name := path.Clean("/" + chi.URLParam(r, "*"))
	filename := filepath.Join(s.dir, filepath.FromSlash(name))
	info, err := os.Stat(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, conditional.Errorf(http.StatusNotFound, "no such file: %s", name)
	} else if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, conditional.Errorf(http.StatusNotFound, "%s is a directory", name)
	}

	d := conditional.CacheDirectives{
		ETag:         etag.Generate(name, info.Size(), info.ModTime()),
		LastModified: info.ModTime(),
	}
	if v.HasValidCache(d.ETag, d.LastModified) {
		log.Trace().Str("file", name).Msg("Client has current version")
		return conditional.NotModifiedResult(d), nil
	}

	body, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	res := conditional.NewResult(body, d)
	res.ContentType = mime.TypeByExtension(filepath.Ext(filename))
	if res.ContentType == "" {
		res.ContentType = http.DetectContentType(body)
	}
	return res, nil
}

// purgeHandler purges stored results: those of the path given in the
// `path` form value, or all of them.
func purgeHandler(c *conditional.Conditional, memo *conditional.Memo, adminToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if adminToken == "" {
			http.Error(w, "admin disabled: set ADMIN_TOKEN", http.StatusForbidden)
			return
		}
		if r.Header.Get("X-Admin-Token") != adminToken {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		var (
			n   int
			err error
		)
		if p := r.FormValue("path"); p != "" {
			n, err = c.PurgePath(p)
		} else {
			n, err = memo.PurgePrefix("")
		}
		if err != nil {
			log.Error().Err(err).Msg("Could not purge")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Write([]byte(strconv.Itoa(n)))
	}
}

func newRouter(config Config, memo *conditional.Memo) http.Handler {
	c := conditional.New(conditional.Config{
		Memo:   memo,
		Name:   config.Name,
		Rules:  config.Rules,
		Logger: &log.Logger,
	})
	files := fileService{dir: config.Dir}

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/files/*", c.Handler(files.serve))
	r.Method(http.MethodHead, "/files/*", c.Handler(files.serve))
	r.Post("/.cache/purge", purgeHandler(c, memo, config.AdminToken))
	return r
}
