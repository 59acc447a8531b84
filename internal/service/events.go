package service

// Broadcaster pushes realtime events to connected dashboards.
type Broadcaster interface {
	Publish(eventType, action string, data interface{}, message string)
}

const (
	EventStock = "stock_update"
	EventOrder = "order_update"
)

type nopBroadcaster struct{}

func (nopBroadcaster) Publish(string, string, interface{}, string) {}

func broadcasterOrNop(b Broadcaster) Broadcaster {
	if b == nil {
		return nopBroadcaster{}
	}
	return b
}
