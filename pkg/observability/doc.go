/*
Package observability turns playback lifecycle hooks into logs and Prometheus metrics.

Both helpers return domain.LifecycleHooks, so they compose with each other (and with
caller hooks) through LifecycleHooks.Merge and plug into playback.WithHooks.
*/
package observability
