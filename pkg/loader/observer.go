package loader

import "time"

// Observer is notified of loader and boundary events. Implementations must
// be safe for concurrent use.
type Observer interface {
	LoadStarted(view string)
	LoadFinished(view string, elapsed time.Duration, err error)
	PlaceholderShown(view string)
	RenderFailed(view string, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) LoadStarted(string)                        {}
func (NopObserver) LoadFinished(string, time.Duration, error) {}
func (NopObserver) PlaceholderShown(string)                   {}
func (NopObserver) RenderFailed(string, error)                {}

// Observers fans events out to several observers.
type Observers []Observer

func (obs Observers) LoadStarted(v string) {
	for _, o := range obs {
		o.LoadStarted(v)
	}
}

func (obs Observers) LoadFinished(v string, elapsed time.Duration, err error) {
	for _, o := range obs {
		o.LoadFinished(v, elapsed, err)
	}
}

func (obs Observers) PlaceholderShown(v string) {
	for _, o := range obs {
		o.PlaceholderShown(v)
	}
}

func (obs Observers) RenderFailed(v string, err error) {
	for _, o := range obs {
		o.RenderFailed(v, err)
	}
}
