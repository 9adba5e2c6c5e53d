package session

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cache"
)

var sessionStore *session.Store

// NewSessionStore creates the session store. With storage "redis" sessions live
// in redis DB 1 next to the cache; anything else keeps them in memory.
func NewSessionStore(storage, password string) *session.Store {
	cfg := session.Config{
		CookieHTTPOnly: true,
		Expiration:     time.Hour * 1,
		KeyLookup:      "cookie:session_id",
	}

	if storage == "redis" {
		host := "localhost"
		port := 6379
		if cacheClient := cache.GetClient(); cacheClient != nil {
			if h, p, err := net.SplitHostPort(cacheClient.Options().Addr); err == nil {
				host = h
				if v, err := strconv.Atoi(p); err == nil {
					port = v
				}
			}
		}
		cfg.Storage = redis.New(redis.Config{
			Host:     host,
			Port:     port,
			Password: password,
			Database: 1,
			Reset:    false,
		})
	}

	sessionStore = session.New(cfg)
	return sessionStore
}

func GetSessionStore() *session.Store {
	return sessionStore
}

// SetSessionValue stores a key-value pair in the user's session
func SetSessionValue(c *fiber.Ctx, key string, value string) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %v", err)
	}

	sess.Set(key, value)
	return sess.Save()
}

// GetSessionValue retrieves a value by key from the user's session
func GetSessionValue(c *fiber.Ctx, key string) string {
	if sessionStore == nil {
		return ""
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return ""
	}

	if strValue, ok := sess.Get(key).(string); ok {
		return strValue
	}
	return ""
}
