// Package utils contains small shared helpers with no better home.
package utils

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

type (
	// BeforeParallelGroupWorkFunc executes before any work starts with the calculated group count.
	BeforeParallelGroupWorkFunc func(numGroups int)
	// MemberWorkFunc runs for each work item (member) of a group.
	MemberWorkFunc func(memberNum, workNum int)
	// GroupWorkDoneFunc runs when a single group's work is done; helpful for merge stages.
	GroupWorkDoneFunc func()
	// GroupWorkFunc runs to determine what work members should do, if any.
	GroupWorkFunc func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc)
)

// GroupWorkParallel parallelizes the given size of work over multiple workers.
// Work items are split into at most ParallelFactor contiguous groups whose
// sizes differ by at most the division remainder, so small inputs still reach
// every item. before may be nil.
func GroupWorkParallel(totalSize int, before BeforeParallelGroupWorkFunc, groupWork GroupWorkFunc) {
	if totalSize <= 0 {
		if before != nil {
			before(0)
		}
		return
	}
	numGroups := ParallelFactor
	if totalSize < numGroups {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	if before != nil {
		before(numGroups)
	}

	runGroup := func(groupNum int) {
		from := groupNum * groupSize
		thisGroupSize := groupSize
		if groupNum == numGroups-1 {
			thisGroupSize += extra
		}
		to := from + thisGroupSize
		memberWork, groupWorkDone := groupWork(groupNum, thisGroupSize, from, to)
		if memberWork != nil {
			memberNum := 0
			for workNum := from; workNum < to; workNum++ {
				memberWork(memberNum, workNum)
				memberNum++
			}
		}
		if groupWorkDone != nil {
			groupWorkDone()
		}
	}

	if numGroups == 1 {
		runGroup(0)
		return
	}
	var wait sync.WaitGroup
	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		groupNumCopy := groupNum
		utils.PanicCapturingGo(func() {
			defer wait.Done()
			runGroup(groupNumCopy)
		})
	}
	wait.Wait()
}

// splitRange returns numParts+1 boundaries dividing [0, length) into
// contiguous parts; the last part absorbs the remainder.
func splitRange(length, numParts int) []int {
	bounds := make([]int, numParts+1)
	partSize := length / numParts
	for i := 1; i < numParts; i++ {
		bounds[i] = i * partSize
	}
	bounds[numParts] = length
	return bounds
}

// ParallelForEachPixel loops through the image and calls f for each [x, y] position.
// The image is divided into N x N blocks, where N is the number of available
// processor threads. For each block a parallel goroutine is started.
func ParallelForEachPixel(size image.Point, f func(x, y int)) {
	procs := runtime.GOMAXPROCS(0)
	xBounds := splitRange(size.X, procs)
	yBounds := splitRange(size.Y, procs)
	var waitGroup sync.WaitGroup
	waitGroup.Add(procs * procs)
	for i := 0; i < procs; i++ {
		for j := 0; j < procs; j++ {
			sX, eX := xBounds[i], xBounds[i+1]
			sY, eY := yBounds[j], yBounds[j+1]
			utils.PanicCapturingGo(func() {
				defer waitGroup.Done()
				for x := sX; x < eX; x++ {
					for y := sY; y < eY; y++ {
						f(x, y)
					}
				}
			})
		}
	}
	waitGroup.Wait()
}

// SimpleFunc is for RunInParallel.
type SimpleFunc func(ctx context.Context) error

// RunInParallel runs all functions in parallel, return is elapsed time and an error.
// The context handed to each function is canceled as soon as any of them fails.
func RunInParallel(ctx context.Context, fs []SimpleFunc) (time.Duration, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	var bigError error
	var bigErrorMutex sync.Mutex
	storeError := func(err error) {
		bigErrorMutex.Lock()
		defer bigErrorMutex.Unlock()
		if bigError == nil || !errors.Is(err, context.Canceled) {
			bigError = multierr.Combine(bigError, err)
		}
	}

	helper := func(f SimpleFunc) {
		defer func() {
			if thePanic := recover(); thePanic != nil {
				storeError(fmt.Errorf("got panic running something in parallel: %v", thePanic))
				cancel()
			}
			wg.Done()
		}()
		if err := f(ctx); err != nil {
			storeError(err)
			cancel()
		}
	}

	for _, f := range fs {
		wg.Add(1)
		go helper(f)
	}

	wg.Wait()
	return time.Since(start), bigError
}
