// Package notify holds the transient notification center. Notifications
// auto-dismiss by falling out of a TTL cache; every notification is also
// logged at a level-appropriate severity.
package notify

import (
	"sort"
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

const (
	// DefaultDismissAfter matches the web UI's 5 second auto-remove.
	DefaultDismissAfter = 5 * time.Second
)

// Center collects transient notifications. Active notifications expire out
// of the cache after the dismiss interval. An optional observer is invoked
// synchronously for each notification so a UI layer can render it.
type Center struct {
	active   *ttlworker.Cache[string, types.Notification]
	observer func(types.Notification)
}

func NewCenter(dismissAfter time.Duration) *Center {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	return &Center{
		active: ttlworker.NewCache[string, types.Notification](dismissAfter),
	}
}

// SetObserver registers the single notification observer. Pass nil to
// remove it.
func (c *Center) SetObserver(fn func(types.Notification)) {
	c.observer = fn
}

// Notify records a transient notification with the default title for its
// level.
func (c *Center) Notify(level, message string) {
	c.NotifyWithData(level, message, nil)
}

// NotifyWithData records a transient notification carrying extra payload
// fields for the observer. A nil Center drops the notification, so callers
// can treat the notifier as optional.
func (c *Center) NotifyWithData(level, message string, data map[string]any) {
	if c == nil {
		return
	}
	n := types.Notification{
		ID:        tool.GenerateRandomUUID(),
		Level:     level,
		Title:     notificationTitle(level),
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}
	c.active.Set(n.ID, n)

	switch level {
	case types.NotifyError:
		tool.DefaultLogger.Errorf("%s: %s", n.Title, message)
	case types.NotifyWarning:
		tool.DefaultLogger.Warnf("%s: %s", n.Title, message)
	default:
		tool.DefaultLogger.Infof("%s: %s", n.Title, message)
	}

	if c.observer != nil {
		c.observer(n)
	}
}

// Active returns the not-yet-dismissed notifications, oldest first.
func (c *Center) Active() []types.Notification {
	if c == nil {
		return nil
	}
	result := make([]types.Notification, 0)
	err := c.active.Range(func(_ string, n types.Notification) error {
		result = append(result, n)
		return nil
	})
	if err != nil {
		return nil
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func notificationTitle(level string) string {
	switch level {
	case types.NotifySuccess:
		return "✅ Success"
	case types.NotifyError:
		return "❌ Error"
	case types.NotifyWarning:
		return "⚠️ Warning"
	default:
		return "ℹ️ Info"
	}
}
