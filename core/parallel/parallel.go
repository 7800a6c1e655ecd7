// Package parallel は独立した系列に対する処理を CPU コア数に応じて分割実行します。
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize は items 個の要素を CPU コア数で範囲 [start, end) に分割し、
// fn を並列に実行します。すべての呼び出しが終わるまで戻りません。
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// 切り上げ除算
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold は items が threshold を超える場合のみ並列化し、
// それ以外は呼び出し元の goroutine で fn(0, items) を実行します。
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}

// ForEach は各添字 i について fn(i) を実行し、最初に失敗した添字（添字順）と
// そのエラーを返します。失敗がなければ (-1, nil) です。
func ForEach(items int, threshold int, fn func(i int) error) (int, error) {
	errs := make([]error, items)
	ParallelizeWithThreshold(items, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = fn(i)
		}
	})
	for i, err := range errs {
		if err != nil {
			return i, err
		}
	}
	return -1, nil
}
