// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data interface{} // Данные события, если нужны
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc позволяет использовать обычную функцию как Listener.
type ListenerFunc func(event Event)

// OnEvent вызывает саму функцию.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Subscription — хэндл подписки. Cancel отписывает слушателя.
type Subscription struct {
	dispatcher *Dispatcher
	eventType  EventType
	listener   Listener
	cancelled  bool
}

// Cancel отписывает слушателя. Повторный вызов ничего не делает.
func (s *Subscription) Cancel() {
	if s == nil || s.cancelled {
		return
	}
	s.cancelled = true
	s.dispatcher.remove(s)
}

// Active сообщает, действует ли ещё подписка.
func (s *Subscription) Active() bool {
	return s != nil && !s.cancelled
}

// Dispatcher — диспетчер событий
type Dispatcher struct {
	listeners map[EventType][]*Subscription
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]*Subscription),
	}
}

// Subscribe — подписка на событие. Возвращённую подписку нужно отменить,
// когда слушатель больше не нужен.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) *Subscription {
	sub := &Subscription{
		dispatcher: d,
		eventType:  eventType,
		listener:   listener,
	}
	d.listeners[eventType] = append(d.listeners[eventType], sub)
	return sub
}

// SubscribeFunc — то же самое для функции.
func (d *Dispatcher) SubscribeFunc(eventType EventType, fn func(Event)) *Subscription {
	return d.Subscribe(eventType, ListenerFunc(fn))
}

func (d *Dispatcher) remove(sub *Subscription) {
	listeners := d.listeners[sub.eventType]
	for i, s := range listeners {
		if s == sub {
			// Новый срез, чтобы не испортить снимок, по которому идёт Dispatch
			next := make([]*Subscription, 0, len(listeners)-1)
			next = append(next, listeners[:i]...)
			next = append(next, listeners[i+1:]...)
			if len(next) == 0 {
				delete(d.listeners, sub.eventType)
			} else {
				d.listeners[sub.eventType] = next
			}
			return
		}
	}
}

// Dispatch — отправка события всем подписчикам.
// Слушатель, отписанный во время рассылки, событие уже не получит.
func (d *Dispatcher) Dispatch(event Event) {
	listeners := d.listeners[event.Type]
	for _, sub := range listeners {
		if sub.cancelled {
			continue
		}
		sub.listener.OnEvent(event)
	}
}

// Count возвращает число активных подписчиков на тип события.
func (d *Dispatcher) Count(eventType EventType) int {
	return len(d.listeners[eventType])
}
