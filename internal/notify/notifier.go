package notify

import "sync"

// Notifier fans values out to subscribers. Values are queued under the
// notifier's lock and delivered in queue order by whichever goroutine is not
// already delivering, so at most one callback runs at a time.
//
// Callbacks run with no lock held and may call back into the owner. A value
// published from inside a callback is delivered after that callback returns.
// The zero value is ready to use.
type Notifier[T any] struct {
	mu         sync.Mutex
	subs       []subscriber[T]
	nextID     int
	queue      []delivery[T]
	delivering bool
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

type delivery[T any] struct {
	id    int
	value T
}

// Update runs change under the notifier's lock. When change reports true
// its value is queued for every current subscriber. Owners mutate their
// state inside change so that the queue order matches the mutation order.
func (n *Notifier[T]) Update(change func() (T, bool)) {
	n.mu.Lock()
	value, publish := change()
	if publish {
		for _, s := range n.subs {
			n.queue = append(n.queue, delivery[T]{id: s.id, value: value})
		}
	}
	n.mu.Unlock()

	n.drain()
}

// Subscribe registers fn and queues current() for it alone. Unless another
// delivery is in progress, fn has seen that value when Subscribe returns.
// The returned func unsubscribes; queued values for it are dropped.
func (n *Notifier[T]) Subscribe(fn func(T), current func() T) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs = append(n.subs, subscriber[T]{id: id, fn: fn})
	n.queue = append(n.queue, delivery[T]{id: id, value: current()})
	n.mu.Unlock()

	n.drain()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of subscribers.
func (n *Notifier[T]) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

func (n *Notifier[T]) drain() {
	n.mu.Lock()
	if n.delivering {
		n.mu.Unlock()
		return
	}
	n.delivering = true

	finished := false
	defer func() {
		// A callback panicked with the lock released.
		if !finished {
			n.mu.Lock()
			n.delivering = false
			n.mu.Unlock()
		}
	}()

	for len(n.queue) > 0 {
		d := n.queue[0]
		n.queue[0] = delivery[T]{}
		n.queue = n.queue[1:]
		fn := n.lookup(d.id)
		n.mu.Unlock()

		if fn != nil {
			fn(d.value)
		}

		n.mu.Lock()
	}
	n.queue = nil
	n.delivering = false
	finished = true
	n.mu.Unlock()
}

// lookup finds a live subscriber; callers hold mu.
func (n *Notifier[T]) lookup(id int) func(T) {
	for _, s := range n.subs {
		if s.id == id {
			return s.fn
		}
	}
	return nil
}
