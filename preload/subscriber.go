package preload

// Subscriber handles refresh lifecycle event subscriptions.
type Subscriber struct {
	done                   chan struct{}
	refreshStartedHandler  func(RefreshStarted)
	refreshCompleteHandler func(RefreshCompleted)
	refreshErrorHandler    func(RefreshError)
	pollStartedHandler     func(PollingStarted)
	pollShutdownHandler    func(PollingShutdown)
}

// OnRefreshStarted sets the handler for RefreshStarted events
func OnRefreshStarted(fn func(RefreshStarted)) func(*Subscriber) {
	return func(s *Subscriber) { s.refreshStartedHandler = fn }
}

// OnRefreshCompleted sets the handler for RefreshCompleted events
func OnRefreshCompleted(fn func(RefreshCompleted)) func(*Subscriber) {
	return func(s *Subscriber) { s.refreshCompleteHandler = fn }
}

// OnRefreshError sets the handler for RefreshError events
func OnRefreshError(fn func(RefreshError)) func(*Subscriber) {
	return func(s *Subscriber) { s.refreshErrorHandler = fn }
}

// OnPollingStarted sets the handler for PollingStarted events
func OnPollingStarted(fn func(PollingStarted)) func(*Subscriber) {
	return func(s *Subscriber) { s.pollStartedHandler = fn }
}

// OnPollingShutdown sets the handler for PollingShutdown events
func OnPollingShutdown(fn func(PollingShutdown)) func(*Subscriber) {
	return func(s *Subscriber) { s.pollShutdownHandler = fn }
}

// NewSubscriber creates a Subscriber with the given options and starts the
// dispatch loop. Returns a closer function that waits for all events to be
// processed; use defer closer() immediately to guarantee cleanup.
//
// The subscriber processes events until the events channel closes,
// then the closer function confirms all processing is complete.
func NewSubscriber(events <-chan Event, opts ...func(*Subscriber)) func() {
	s := &Subscriber{
		done:                   make(chan struct{}),
		refreshStartedHandler:  func(RefreshStarted) {},   // nop by default
		refreshCompleteHandler: func(RefreshCompleted) {}, // nop by default
		refreshErrorHandler:    func(RefreshError) {},     // nop by default
		pollStartedHandler:     func(PollingStarted) {},   // nop by default
		pollShutdownHandler:    func(PollingShutdown) {},  // nop by default
	}

	for _, opt := range opts {
		opt(s)
	}

	// Start the dispatch loop immediately
	go func() {
		defer close(s.done)
		for ev := range events {
			switch e := ev.(type) {
			case RefreshStarted:
				s.refreshStartedHandler(e)
			case RefreshCompleted:
				s.refreshCompleteHandler(e)
			case RefreshError:
				s.refreshErrorHandler(e)
			case PollingStarted:
				s.pollStartedHandler(e)
			case PollingShutdown:
				s.pollShutdownHandler(e)
			}
		}
	}()

	return func() {
		<-s.done
	}
}
