package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout)
)

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.ErrorFieldName = "err"
	zerolog.TimeFieldFormat = time.RFC3339
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput redirects every subsequent entry to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	logger = newLogger(w)
	mu.Unlock()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func write(e *zerolog.Event, c *fiber.Ctx, action string, err error, fields map[string]any) {
	if c != nil {
		e = e.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path())
		if st := c.Response().StatusCode(); st != 0 {
			e = e.Int("status", st)
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e = e.Str("req_id", rid)
		}
		if email, ok := c.Locals("user_email").(string); ok && email != "" {
			e = e.Str("user", email)
		}
	}
	if action != "" {
		e = e.Str("action", action)
	}
	if err != nil {
		e = e.Err(err)
	}
	if len(fields) > 0 {
		e = e.Interface("fields", fields)
	}
	e.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(current().Info(), c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(current().Log().Str(zerolog.LevelFieldName, "audit"), c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(current().Warn(), c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(current().Error(), c, action, err, fields)
}
