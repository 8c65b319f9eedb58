package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// CookiesKey is the storage key holding the persisted session cookies
const CookiesKey = "session-cookies"

// KV is the key-value storage port shared with favorites
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type cookieStore struct {
	kv  KV
	jar http.CookieJar
	url *url.URL
}

func (s *cookieStore) restore(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, CookiesKey)
	if err != nil || !ok {
		return err
	}

	var stored []storedCookie
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("corrupt cookie document: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: "/"})
	}
	s.jar.SetCookies(s.url, cookies)
	return nil
}

func (s *cookieStore) save(ctx context.Context) error {
	current := s.jar.Cookies(s.url)
	if len(current) == 0 {
		return s.clear(ctx)
	}

	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, CookiesKey, raw)
}

func (s *cookieStore) clear(ctx context.Context) error {
	return s.kv.Remove(ctx, CookiesKey)
}
