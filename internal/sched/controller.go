package sched

import "sync"

type eventKind int

const (
	evRegister eventKind = iota
	evSubmit
	evComplete
	evDisconnect
)

type event struct {
	kind   eventKind
	nodeID string
	tests  []string
	unitID string
}

// Controller drives the dispatcher from a single control loop. Node events
// are queued on a channel and processed strictly one at a time, so the
// dispatcher's state never needs locking. The loop stops reacting after the
// run completes or fails but keeps draining events until Close, so late
// completions from worker goroutines never block.
type Controller struct {
	dispatcher *Dispatcher
	events     chan event
	done       chan struct{}
	closeOnce  sync.Once
	err        error
	finished   bool
}

// NewController wraps a dispatcher in an event loop.
func NewController(d *Dispatcher) *Controller {
	return &Controller{
		dispatcher: d,
		events:     make(chan event, 64),
		done:       make(chan struct{}),
	}
}

// Start launches the control loop.
func (c *Controller) Start() {
	go c.loop()
}

func (c *Controller) loop() {
	for ev := range c.events {
		if c.finished {
			continue
		}
		if err := c.handle(ev); err != nil {
			c.finish(err)
			continue
		}
		if c.dispatcher.Done() {
			c.finish(nil)
		}
	}
	// Producers are gone; if the run never completed, unblock waiters.
	c.finish(nil)
}

func (c *Controller) handle(ev event) error {
	switch ev.kind {
	case evRegister:
		return c.dispatcher.RegisterNode(ev.nodeID)
	case evSubmit:
		return c.dispatcher.SubmitCollection(ev.nodeID, ev.tests)
	case evComplete:
		return c.dispatcher.CompleteUnit(ev.nodeID, ev.unitID)
	case evDisconnect:
		c.dispatcher.DisconnectNode(ev.nodeID)
	}
	return nil
}

func (c *Controller) finish(err error) {
	if !c.finished {
		c.finished = true
		c.err = err
	}
	c.closeOnce.Do(func() { close(c.done) })
}

// RegisterNode queues a node registration event.
func (c *Controller) RegisterNode(nodeID string) {
	c.events <- event{kind: evRegister, nodeID: nodeID}
}

// SubmitCollection queues a node's collected test list.
func (c *Controller) SubmitCollection(nodeID string, tests []string) {
	c.events <- event{kind: evSubmit, nodeID: nodeID, tests: tests}
}

// CompleteUnit queues a unit completion event.
func (c *Controller) CompleteUnit(nodeID, unitID string) {
	c.events <- event{kind: evComplete, nodeID: nodeID, unitID: unitID}
}

// DisconnectNode queues a node disconnection event.
func (c *Controller) DisconnectNode(nodeID string) {
	c.events <- event{kind: evDisconnect, nodeID: nodeID}
}

// Wait blocks until the run completes or fails and returns the fatal error,
// if any.
func (c *Controller) Wait() error {
	<-c.done
	return c.err
}

// Close shuts the event channel down. Call only after all event producers
// have stopped.
func (c *Controller) Close() {
	close(c.events)
}
