// Package orchestration runs several sequence engines over the same index
// range concurrently and cross-checks their terms. It decouples the
// comparison from presentation via the ResultPresenter interface.
package orchestration
