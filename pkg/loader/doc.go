// Package loader implements deferred view loading with memoization,
// flicker suppression and failure containment.
//
// A Loader wraps a LoadFunc that produces a view.Definition. The first
// Start runs the function concurrently with a minimum-delay timer; the
// loader becomes Ready only after both finish, so very fast loads do not
// flash a loading state. The function runs at most once per Loader.
//
// A Registry hands out one Loader per key, which keeps wrappers stable when
// the same view is requested again.
//
// A Boundary mounts a Loader for a single render:
//
//   - a placeholder is emitted only if the underlying work has not returned
//     after PlaceholderDelay
//   - load failures and panics raised while rendering the resolved view
//     both become the same recoverable error view
//   - cancelling the render context stops the boundary timers; the load
//     itself keeps running and its result stays memoized
//
// # Usage
//
//	reg := loader.NewRegistry(loader.WithMinDelay(300 * time.Millisecond))
//	l := reg.Wrap("orders", loadOrders)
//
//	b := loader.NewBoundary(loader.DefaultConfig())
//	outcome, err := b.Serve(ctx, l, props, sink)
//
// Recovery from a Failed loader requires a fresh Registry: Failed and Ready
// are terminal.
package loader
