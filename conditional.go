// Package conditional implements HTTP conditional caching for services:
// it decides from a request's validators and a result's cache metadata
// whether to answer 304 (Not Modified) or send the full response with
// the appropriate cache headers, and optionally memoizes results by key.
package conditional

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	cachekey "github.com/always-cache/conditional/pkg/cache-key"
	cacheupdate "github.com/always-cache/conditional/pkg/cache-update"
	"github.com/always-cache/conditional/pkg/etag"
	responsetransformer "github.com/always-cache/conditional/pkg/response-transformer"
	tee "github.com/always-cache/conditional/pkg/response-writer-tee"
	"github.com/always-cache/conditional/rfc9111"
	"github.com/always-cache/conditional/rfc9211"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type Config struct {
	// Storage for results. Results are not memoized if nil.
	Memo *Memo
	// Name used in Cache-Status and as the namespace of memo keys.
	// Defaults to "conditional".
	Name string
	// Rules supplying cache directives for matching requests.
	Rules responsetransformer.Rules
	// Logger to use. A console logger is used if nil.
	Logger *zerolog.Logger
}

// ServiceFunc produces the result for a request. The validators are passed
// so that the service can call HasValidCache before doing expensive work.
type ServiceFunc func(r *http.Request, v RequestValidators) (*Result, error)

type Conditional struct {
	memo  *Memo
	keyer cachekey.CacheKeyer
	rules responsetransformer.Rules
	name  string
	log   zerolog.Logger
}

// New creates a Conditional instance from the config.
func New(config Config) *Conditional {
	// use console logger if not specified in config
	var logger zerolog.Logger
	if config.Logger == nil {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		logger = *config.Logger
	}
	name := config.Name
	if name == "" {
		name = "conditional"
	}
	// create a child logger and add defaults
	logger = logger.With().
		Str("cache", name).
		Logger()

	memo := config.Memo
	if memo != nil {
		memo = memo.WithLogger(logger)
	}

	return &Conditional{
		memo:  memo,
		keyer: cachekey.NewCacheKeyer(name),
		rules: config.Rules,
		name:  name,
		log:   logger,
	}
}

// Handler returns a handler answering requests with the results of the service.
func (c *Conditional) Handler(service ServiceFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer c.recoverPanic(w, r)
		v := validatorsFor(r)
		cs := rfc9211.New(c.name)
		res, err := c.resolve(r, &cs, func() (*Result, error) {
			res, err := service(r, v)
			if err == nil && res != nil {
				c.applyRules(r, res)
			}
			return res, err
		})
		if err != nil {
			c.writeError(w, r, err, cs)
			return
		}
		c.writeResult(w, r, res, cs)
	})
}

// Middleware makes the responses of next conditional. GET and HEAD responses
// are recorded, memoized if configured, and answered with 304 (Not Modified)
// when the client's validators match. An entity-tag is generated from the
// body for 200 (OK) responses that do not set one.
//
// Other requests are passed through, after which the stored results for the
// target URI and for the paths in the `Cache-Update` response header are purged.
func (c *Conditional) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer c.recoverPanic(w, r)
		cs := rfc9211.New(c.name)
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			cs.Forward(rfc9211.FwdReasonMethod)
			cs.AddTo(w.Header())
			rwtee := tee.NewResponseSaver(w)
			next.ServeHTTP(rwtee, r)
			c.invalidate(r, rwtee.StatusCode(), rwtee.Header())
			c.logRequest(r, rwtee.StatusCode(), cs)
			return
		}
		res, err := c.resolve(r, &cs, func() (*Result, error) {
			return c.record(next, r), nil
		})
		if err != nil {
			c.writeError(w, r, err, cs)
			return
		}
		c.writeResult(w, r, res, cs)
	})
}

// resolve gets the result from the memo, or produces it.
// It sets the Cache-Status accordingly.
func (c *Conditional) resolve(r *http.Request, cs *rfc9211.CacheStatus, produce func() (*Result, error)) (*Result, error) {
	if c.memo == nil {
		cs.Forward(rfc9211.FwdReasonBypass)
		return call(produce)
	}
	key, err := c.keyer.GetKey(r)
	if err == cachekey.ErrorMethodNotSupported {
		cs.Forward(rfc9211.FwdReasonMethod)
		return call(produce)
	} else if err != nil {
		return nil, err
	}
	if rfc9111.Authenticated(r) {
		return c.resolveAuthenticated(r, cs, key, produce)
	}
	c.requestLogger(r).Trace().Str("key", key).Msg("Getting result")
	res, hit, err := c.memo.GetOrCompute(key, produce)
	if err != nil {
		return nil, err
	}
	if hit {
		cs.Hit()
		cs.SetTimeToLive(timeToLive(res))
	} else {
		cs.Forward(rfc9211.FwdReasonUriMiss)
		cs.Stored = storable(res)
	}
	return res, nil
}

// resolveAuthenticated produces the result for a request carrying
// Authorization. The result may be meant for that user only, so it is
// stored only if its directives allow a shared cache to store it.
func (c *Conditional) resolveAuthenticated(r *http.Request, cs *rfc9211.CacheStatus, key string, produce func() (*Result, error)) (*Result, error) {
	cs.Forward(rfc9211.FwdReasonRequest)
	res, err := call(produce)
	if err != nil {
		return nil, err
	}
	if rfc9111.MayStoreAuthenticated(Decision{Proceed, res.CacheDirectives}.Header()) {
		cs.Stored = c.memo.Store(key, res)
	}
	return res, nil
}

func call(produce func() (*Result, error)) (*Result, error) {
	res, err := produce()
	if err == nil && res == nil {
		err = ErrNoResult
	}
	return res, err
}

// timeToLive returns the remaining freshness lifetime in seconds.
func timeToLive(res *Result) int {
	ttl := res.EffectiveMaxAge()
	if res.Age != nil {
		ttl -= *res.Age
	}
	if ttl < 0 {
		return 0
	}
	return int(ttl / time.Second)
}

func (c *Conditional) writeResult(w http.ResponseWriter, r *http.Request, res *Result, cs rfc9211.CacheStatus) {
	cs.AddTo(w.Header())
	dec := WriteResult(w, r, res)
	c.invalidate(r, res.status(), res.Header)
	status := res.status()
	if dec.IsNotModified() {
		status = http.StatusNotModified
	}
	c.logRequest(r, status, cs)
}

func (c *Conditional) writeError(w http.ResponseWriter, r *http.Request, err error, cs rfc9211.CacheStatus) {
	code := statusCode(err)
	logger := c.requestLogger(r)
	if code >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("url", r.URL.String()).Msg("Could not produce result")
	} else {
		logger.Debug().Err(err).Int("code", code).Msg("Service returned error")
	}
	cs.AddTo(w.Header())
	http.Error(w, http.StatusText(code), code)
	c.logRequest(r, code, cs)
}

func (c *Conditional) recoverPanic(w http.ResponseWriter, r *http.Request) {
	if err := recover(); err != nil {
		c.requestLogger(r).Error().
			Interface("panic", err).
			Bytes("stack", debug.Stack()).
			Msg("Recovered from panic")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// record runs next for the request and converts the recorded response to
// a result. Validators are removed from the request, so that next always
// produces the full response. HEAD is recorded as GET, since they share
// a memo key.
func (c *Conditional) record(next http.Handler, r *http.Request) *Result {
	req := r.Clone(r.Context())
	req.Method = http.MethodGet
	req.Header.Del(IfNoneMatch)
	req.Header.Del(IfModifiedSince)

	rwtee := tee.NewResponseSaver(nil)
	next.ServeHTTP(rwtee, req)

	status := rwtee.StatusCode()
	h := rwtee.Header().Clone()
	c.rules.Apply(req, status, h)
	body := rwtee.Body()
	d := DirectivesFromHeader(h)
	if status == http.StatusOK && !d.HasETag() {
		d.ETag = etag.FromBytes(body)
	}
	res := &Result{
		CacheDirectives: d,
		StatusCode:      status,
		ContentType:     h.Get("Content-Type"),
		Body:            body,
	}
	removeCacheHeaders(h)
	h.Del("Content-Type")
	h.Del("Content-Length")
	if len(h) > 0 {
		res.Header = h
	}
	return res
}

// applyRules applies the rule matching the request to a service result.
func (c *Conditional) applyRules(r *http.Request, res *Result) {
	if res.status() != http.StatusOK {
		return
	}
	rule := c.rules.Find(r)
	if rule == nil {
		return
	}
	if rule.Override != "" {
		res.MaxAge, res.Flags = cacheControlDirectives(rule.Override)
	} else if rule.Default != "" && res.MaxAge == nil && res.Flags == 0 {
		res.MaxAge, res.Flags = cacheControlDirectives(rule.Default)
	}
	if len(rule.Headers) > 0 && res.Header == nil {
		res.Header = make(http.Header)
	}
	for name, value := range rule.Headers {
		res.Header.Set(name, value)
	}
}

// invalidate purges the stored results affected by an unsafe request.
func (c *Conditional) invalidate(r *http.Request, statusCode int, h http.Header) {
	if c.memo == nil {
		return
	}
	for _, uri := range rfc9111.GetInvalidateURIs(r, statusCode, h) {
		c.purgePath(r, uri)
	}
	for _, update := range cacheupdate.GetCacheUpdates(r, h) {
		path := update.Path
		if update.Delay > 0 {
			c.requestLogger(r).Trace().Str("path", path).Dur("delay", update.Delay).Msg("Delaying purge")
			time.AfterFunc(update.Delay, func() {
				c.purgePath(r, path)
			})
		} else {
			c.purgePath(r, path)
		}
	}
}

// PurgePath removes all stored results for the path.
func (c *Conditional) PurgePath(path string) (int, error) {
	if c.memo == nil {
		return 0, nil
	}
	total := 0
	for _, prefix := range c.keyer.PathPrefixes(path) {
		n, err := c.memo.PurgePrefix(prefix)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (c *Conditional) purgePath(r *http.Request, path string) {
	n, err := c.PurgePath(path)
	if err != nil {
		c.requestLogger(r).Error().Err(err).Str("path", path).Msg("Could not purge stored results")
		return
	}
	c.requestLogger(r).Trace().Str("path", path).Int("purged", n).Msg("Purged stored results")
}

// requestLogger returns the logger from the request context.
// If no logger is found, it will return the instance logger.
func (c *Conditional) requestLogger(r *http.Request) *zerolog.Logger {
	logger := hlog.FromRequest(r)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &c.log
	}
	return logger
}

func (c *Conditional) logRequest(r *http.Request, statusCode int, cs rfc9211.CacheStatus) {
	isHit := 0
	if cs.IsHit() {
		isHit = 1
	}
	c.requestLogger(r).Debug().
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Str("sourceIp", getRequestSourceIp(r)).
		Int("code", statusCode).
		Str("status", string(cs.Status)).
		Str("fwd", string(cs.FwdReason)).
		Bool("stored", cs.Stored).
		Int("ttl", cs.TimeToLive).
		Int("hit", isHit).
		Msg("Sending response to client")
}

func getRequestSourceIp(r *http.Request) string {
	// RemoteAddr is in the format:
	// 1.2.3.4:10000 for ipv4
	// [1:2:3]:10000 for ipv6
	ipAndPort := r.RemoteAddr
	portSepIdx := strings.LastIndex(ipAndPort, ":")
	// if not found, return
	if portSepIdx < 0 {
		return ipAndPort
	}
	return ipAndPort[:portSepIdx]
}
