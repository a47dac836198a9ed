package imagesize

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/footlights/pkg/buildinfo"
	"github.com/matzehuels/footlights/pkg/cache"
	"github.com/matzehuels/footlights/pkg/canvas"
	"github.com/matzehuels/footlights/pkg/dataurl"
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/observability"
)

const (
	// DefaultTimeout bounds a remote image fetch.
	DefaultTimeout = 30 * time.Second

	// maxImageBytes caps how much of an image source is read.
	maxImageBytes = 16 << 20

	cacheKeyType = "imagesize"
)

// Prober reads image headers from local files, data URLs and, optionally,
// remote URLs.
type Prober struct {
	baseDir string
	noLocal bool
	client  *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	logger  *log.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithBaseDir resolves relative paths against dir, typically the directory
// of the document being rendered.
func WithBaseDir(dir string) Option {
	return func(p *Prober) { p.baseDir = dir }
}

// WithoutLocalFiles refuses sources that name a file on disk. Servers use it
// so documents cannot probe the host's filesystem.
func WithoutLocalFiles() Option {
	return func(p *Prober) { p.noLocal = true }
}

// WithRemote enables http and https sources. A nil client gets a default
// client with DefaultTimeout; a nil cache disables caching.
func WithRemote(client *http.Client, c cache.Cache) Option {
	return func(p *Prober) {
		if client == nil {
			client = &http.Client{Timeout: DefaultTimeout}
		}
		if c == nil {
			c = cache.NewNullCache()
		}
		p.client, p.cache = client, c
	}
}

// WithKeyer sets how remote sizes are keyed in the cache.
func WithKeyer(k cache.Keyer) Option {
	return func(p *Prober) {
		if k != nil {
			p.keyer = k
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *Prober) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProber creates a Prober. Remote sources are refused unless WithRemote is given.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		keyer:  cache.NewDefaultKeyer(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ImageSize implements Provider.
func (p *Prober) ImageSize(ctx context.Context, src string) (canvas.Size, error) {
	var (
		size canvas.Size
		err  error
	)
	switch {
	case dataurl.IsDataURL(src):
		size, err = probeDataURL(src)
	case IsRemote(src):
		size, err = p.probeRemote(ctx, src)
	default:
		size, err = p.probeFile(src)
	}
	if err == nil {
		p.logger.Debug("probed image", "src", dataurl.Abbrev(src), "size", size)
	}
	return size, err
}

func probeDataURL(src string) (canvas.Size, error) {
	data, _, err := dataurl.Decode(src)
	if err != nil {
		return canvas.Size{}, err
	}
	return ProbeReader(bytes.NewReader(data))
}

func (p *Prober) probeFile(src string) (canvas.Size, error) {
	f, err := p.openFile(src)
	if err != nil {
		return canvas.Size{}, err
	}
	defer f.Close()
	return ProbeReader(f)
}

func (p *Prober) openFile(src string) (*os.File, error) {
	if p.noLocal {
		return nil, errors.New(errors.ErrCodeUnsupported, "local images are disabled: %s", src)
	}
	path := strings.TrimPrefix(src, "file://")
	if !filepath.IsAbs(path) && p.baseDir != "" {
		path = filepath.Join(p.baseDir, path)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open image %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open image %s", path)
	}
	return f, nil
}

func (p *Prober) probeRemote(ctx context.Context, src string) (canvas.Size, error) {
	if p.client == nil {
		return canvas.Size{}, errors.New(errors.ErrCodeUnsupported, "remote images are disabled: %s", src)
	}

	key := p.keyer.ImageSizeKey(src)
	if data, hit, err := p.cache.Get(ctx, key); err == nil && hit {
		var size canvas.Size
		if json.Unmarshal(data, &size) == nil {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return size, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	size, err := p.fetch(ctx, src)
	if err != nil {
		return canvas.Size{}, err
	}

	if data, err := json.Marshal(size); err == nil {
		if err := p.cache.Set(ctx, key, data, cache.TTLImageSize); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		} else {
			p.logger.Warn("cache image size", "src", src, "err", err)
		}
	}
	return size, nil
}

func (p *Prober) fetch(ctx context.Context, src string) (canvas.Size, error) {
	body, err := p.get(ctx, src)
	if err != nil {
		return canvas.Size{}, err
	}
	defer body.Close()
	return ProbeReader(io.LimitReader(body, maxImageBytes))
}

// get issues the GET for src and returns the body of a 200 response.
func (p *Prober) get(ctx context.Context, src string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "image url %s", src)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()

	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", src)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", src, resp.StatusCode)
	}
	return resp.Body, nil
}

// Load implements Loader. It honors the same restrictions as ImageSize:
// local files unless WithoutLocalFiles, remote URLs only WithRemote.
// Sources larger than 16 MiB are refused.
func (p *Prober) Load(ctx context.Context, src string) ([]byte, error) {
	if dataurl.IsDataURL(src) {
		data, _, err := dataurl.Decode(src)
		return data, err
	}

	var body io.ReadCloser
	if IsRemote(src) {
		if p.client == nil {
			return nil, errors.New(errors.ErrCodeUnsupported, "remote images are disabled: %s", src)
		}
		b, err := p.get(ctx, src)
		if err != nil {
			return nil, err
		}
		body = b
	} else {
		f, err := p.openFile(src)
		if err != nil {
			return nil, err
		}
		body = f
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxImageBytes+1))
	if err != nil {
		code := errors.ErrCodeInternal
		if IsRemote(src) {
			code = errors.ErrCodeNetwork
		}
		return nil, errors.Wrap(code, err, "read image %s", src)
	}
	if len(data) > maxImageBytes {
		return nil, errors.New(errors.ErrCodeUnsupported, "image %s is larger than %d bytes", src, maxImageBytes)
	}
	p.logger.Debug("loaded image", "src", src, "bytes", len(data))
	return data, nil
}

// IsRemote reports whether src is an http or https URL.
func IsRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
