package export

import (
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Workers returns how many frames to paint at once. A positive request is
// used as is; otherwise one worker per logical CPU.
func Workers(requested int) int {
	if requested > 0 {
		return requested
	}
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		log.Debug().Err(err).Msg("cpu count unavailable, using GOMAXPROCS")
		n = runtime.GOMAXPROCS(0)
	}
	return n
}

// BatchSize is how many decoded frames may be held in memory at once: a
// few per worker, bounded by a quarter of the available memory.
func BatchSize(workers, width, height int) int {
	batch := workers * 4
	frameBytes := uint64(width) * uint64(height) * 4
	if frameBytes == 0 {
		return batch
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return batch
	}
	if fit := int(vm.Available / 4 / frameBytes); fit < batch {
		batch = fit
	}
	return max(batch, 1)
}
