// internal/vault/vault.go
//
// Vault client wrapper for secret-valued configuration.
//
// Context
// -------
//   - Configuration values of the form `vault:<mount>/<path>#<key>` are
//     references, not secrets.  cmd/web resolves the control-plane DB
//     password through Resolve before opening the pool.
//   - Reads go through the KV-v2 API and are cached per path#key for the
//     requested TTL.
//   - Plain values pass through Resolve untouched, so local setups can keep
//     the password in .env.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New()                          // during boot.
//  2. pw,  err := cli.Resolve(ctx, cfg.Database.GlobalPassword, ttl)
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// RefPrefix marks a configuration value as a Vault reference.
const RefPrefix = "vault:"

// ErrBadRef is returned for references missing a path or key.
var ErrBadRef = errors.New("vault reference must look like vault:<mount>/<path>#<key>")

//
// SECTION 1.  Public façade
//

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // canonical path#key → value + expiry.
}

type cached struct {
	val string
	exp time.Time
}

// New builds a client from the VAULT_* environment.
func New() (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}
	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	return &Client{api: apiCli, cache: make(map[string]cached)}, nil
}

// IsRef reports whether v is a Vault reference.
func IsRef(v string) bool { return strings.HasPrefix(v, RefPrefix) }

// ParseRef splits "vault:<mount>/<path>#<key>" into secret path and key.
func ParseRef(ref string) (secretPath, key string, err error) {
	body := strings.TrimPrefix(ref, RefPrefix)
	i := strings.LastIndexByte(body, '#')
	if !IsRef(ref) || i <= 0 || i == len(body)-1 {
		return "", "", ErrBadRef
	}
	return body[:i], body[i+1:], nil
}

// Resolve returns v unchanged unless it is a Vault reference, in which case
// the referenced secret is fetched (and cached for ttl when ttl > 0).
func (c *Client) Resolve(ctx context.Context, v string, ttl time.Duration) (string, error) {
	if !IsRef(v) {
		return v, nil
	}
	p, k, err := ParseRef(v)
	if err != nil {
		return "", err
	}
	return c.GetKV(ctx, p, k, ttl)
}

// GetKV fetches a single key from a KV-v2 secret.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	if ttl > 0 {
		c.cacheMu.RLock()
		if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
			c.cacheMu.RUnlock()
			return cv.val, nil
		}
		c.cacheMu.RUnlock()
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}
	return sval, nil
}

//
// SECTION 2.  Helpers
//

func splitMount(p string) (mount, rel string) {
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return
}
