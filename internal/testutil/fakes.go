// Package testutil holds fakes shared by package tests.
package testutil

import "sync"

// Call records a single capture action.
type Call struct {
	Name string
	Seq  int
}

// FakeCapture implements box.Capturer and records acquisitions and releases.
type FakeCapture struct {
	mu    sync.Mutex
	Calls []Call
}

// Capture records an acquisition and returns a release that records itself.
func (f *FakeCapture) Capture() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	seq := f.count("Capture") + 1
	f.Calls = append(f.Calls, Call{Name: "Capture", Seq: seq})
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.Calls = append(f.Calls, Call{Name: "Release", Seq: seq})
	}
}

// Acquired returns the number of captures taken.
func (f *FakeCapture) Acquired() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count("Capture")
}

// Released returns the number of captures released.
func (f *FakeCapture) Released() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count("Release")
}

func (f *FakeCapture) count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Recorder collects callback values across goroutines.
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

// Record appends v.
func (r *Recorder[T]) Record(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

// Values returns a copy of everything recorded so far.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}
