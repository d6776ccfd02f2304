package session

import (
	"github.com/pbnjay/memory"
	"github.com/prometheus/procfs"
)

// lowMemoryThresholdBytes is the point below which reaping is made more
// aggressive: small hosts build up stale rooms/games faster relative to
// their available headroom.
const lowMemoryThresholdBytes = 512 * 1024 * 1024

// reapBatchSize returns how many idle rooms ReapIdleRooms may dispose per
// sweep on hosts with constrained memory, versus an unbounded sweep
// elsewhere. ReleaseCompletedGames does not use it.
func reapBatchSize() int {
	if total := memory.TotalMemory(); total > 0 && total < lowMemoryThresholdBytes {
		return 64
	}
	return 0 // 0 means unbounded
}

// logRSSOnDispose reports the process's current resident set size whenever
// the reaper actually disposes of something, giving operators a data point
// to correlate idle-entity growth against real memory pressure.
func (m *Manager) logRSSOnDispose(disposed int) {
	if disposed == 0 || m.log == nil {
		return
	}
	proc, err := procfs.Self()
	if err != nil {
		m.log.Debugf("disposed %d idle entities, RSS unavailable: %v", disposed, err)
		return
	}
	stat, err := proc.Stat()
	if err != nil {
		m.log.Debugf("disposed %d idle entities, RSS unavailable: %v", disposed, err)
		return
	}
	m.log.Infof("disposed %d idle entities, RSS now %d bytes", disposed, stat.ResidentMemory())
}
