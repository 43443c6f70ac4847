package store

// NoticeLevel classifies a toast for the renderer.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is the payload of a user-visible, auto-dismissing notification.
// Stores only produce it; rendering belongs to whatever consumes the
// notification queue.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Title string      `json:"title"`
	Text  string      `json:"text"`
}

// Notifier delivers notices to the outside world. Delivery is best-effort.
type Notifier interface {
	Push(n Notice)
}

// NopNotifier drops every notice. Used in tests and when no broker is
// configured.
type NopNotifier struct{}

// Push implements Notifier.
func (NopNotifier) Push(Notice) {}
