/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import "time"

// Loop serializes all room and round mutation onto a single goroutine.
// Handlers and timer callbacks posted here run to completion one at a
// time, so no two handlers for the same room ever interleave mid-mutation.
type Loop struct {
	cmds chan func()
	done chan struct{}
}

func newLoop() *Loop {
	l := &Loop{
		cmds: make(chan func(), 256),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.cmds:
			fn()
		case <-l.done:
			return
		}
	}
}

// Post schedules fn to run on the loop and returns immediately.
func (l *Loop) Post(fn func()) {
	select {
	case l.cmds <- fn:
	case <-l.done:
	}
}

// Do runs fn on the loop and waits for it to finish. Never call from a
// handler already running on the loop.
func (l *Loop) Do(fn func()) {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// After runs fn on the loop once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		l.Post(fn)
	})
}

// Every runs fn on the loop at the given interval until fn returns false.
// Callbacks scheduled for a finished round are expected to detect their
// staleness via a generation token and return false without side effects.
func (l *Loop) Every(interval time.Duration, fn func() bool) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				again := make(chan bool, 1)
				l.Post(func() {
					again <- fn()
				})
				select {
				case more := <-again:
					if !more {
						return
					}
				case <-l.done:
					return
				}
			case <-l.done:
				return
			}
		}
	}()
}

// Stop ends the loop. Pending and future callbacks are dropped.
func (l *Loop) Stop() {
	close(l.done)
}
