package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultJWKSRefresh = 15 * time.Minute
	// unknown kids trigger at most one fetch per gap
	minJWKSFetchGap = 30 * time.Second
)

var ErrKeyNotFound = errors.New("jwks: key not found")

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKS is a cache of the realm's RSA signing keys, refreshed in the
// background and on demand when a token names a kid it has not seen.
type JWKS struct {
	url    string
	client *http.Client
	logger zerolog.Logger

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	lastFetch time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewJWKS fetches the key set once and keeps it fresh every refresh
// (15m when zero) until Close.
func NewJWKS(ctx context.Context, url string, refresh time.Duration, logger zerolog.Logger) (*JWKS, error) {
	if refresh <= 0 {
		refresh = defaultJWKSRefresh
	}
	j := &JWKS{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
		keys:   map[string]*rsa.PublicKey{},
		done:   make(chan struct{}),
	}
	if err := j.fetch(ctx); err != nil {
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	go j.loop(loopCtx, refresh)
	return j, nil
}

func (j *JWKS) loop(ctx context.Context, every time.Duration) {
	defer close(j.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := j.fetch(ctx); err != nil && ctx.Err() == nil {
				j.logger.Warn().Err(err).Str("url", j.url).Msg("jwks refresh failed")
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the background refresh and waits for it to exit.
func (j *JWKS) Close() {
	j.cancel()
	<-j.done
}

func (j *JWKS) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.url, nil)
	if err != nil {
		return fmt.Errorf("jwks: %w", err)
	}
	resp, err := j.client.Do(req)
	if err != nil {
		return fmt.Errorf("jwks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks: unexpected status %d", resp.StatusCode)
	}

	keys, skipped, err := parseJWKS(resp.Body)
	if err != nil {
		return err
	}
	for _, kid := range skipped {
		j.logger.Warn().Str("kid", kid).Msg("jwks: skipping unusable key")
	}

	j.mu.Lock()
	j.keys = keys
	j.lastFetch = time.Now()
	j.mu.Unlock()
	j.logger.Debug().Int("keys", len(keys)).Msg("jwks loaded")
	return nil
}

// parseJWKS keeps the RSA signing keys of a key set and reports the kids
// of RSA keys it could not decode.
func parseJWKS(r io.Reader) (map[string]*rsa.PublicKey, []string, error) {
	var set struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, nil, fmt.Errorf("jwks: decode: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	var skipped []string
	for _, k := range set.Keys {
		if k.Kty != "RSA" || (k.Use != "" && k.Use != "sig") {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			skipped = append(skipped, k.Kid)
			continue
		}
		keys[k.Kid] = pub
	}
	return keys, skipped, nil
}

func (k jwk) publicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}
	exp := new(big.Int).SetBytes(e)
	if !exp.IsInt64() || exp.Int64() < 3 || exp.Int64() > 1<<31-1 {
		return nil, errors.New("jwks: invalid exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exp.Int64())}, nil
}

// Get returns the key for kid, refetching the set when kid is unknown and
// the last fetch is older than a short gap.
func (j *JWKS) Get(kid string) (*rsa.PublicKey, error) {
	j.mu.RLock()
	pub, recent := j.keys[kid], time.Since(j.lastFetch) < minJWKSFetchGap
	j.mu.RUnlock()
	if pub != nil {
		return pub, nil
	}
	if recent {
		return nil, ErrKeyNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := j.fetch(ctx); err != nil {
		return nil, err
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	if pub = j.keys[kid]; pub == nil {
		return nil, ErrKeyNotFound
	}
	return pub, nil
}
