// Package rworker runs jobs on goroutines whose concurrency is capped by a
// shared rate channel.
package rworker

import "sync"

// Job runs fn on its own goroutine once the rate channel has a free slot.
// The first error is pushed to errCh, later ones are dropped.
func Job(wg *sync.WaitGroup, fn func() error, rate chan struct{}, errCh chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		rate <- struct{}{}
		if err := fn(); err != nil {
			select {
			case errCh <- err:
			default:
			}
		}
		<-rate
	}()
}
