package worker

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseJobSkipsOverlappingRuns(t *testing.T) {
	var (
		calls   int32
		started = make(chan struct{})
		release = make(chan struct{})
	)

	job := &BaseJob{}
	job.OnWork = func() error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Run()
	}()

	<-started
	assert.True(t, job.IsRunning())
	job.Run()

	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.False(t, job.IsRunning())
}
