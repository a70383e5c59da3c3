package koipond

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// debugStats holds per-frame timing and command metrics.
// Only populated when Config.Debug is true.
type debugStats struct {
	compileTime  time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
	layerCounts  [layerCount]int
}

// debugLog prints timing and command stats to stderr.
func (r *Renderer) debugLog(stats debugStats) {
	if !r.debug {
		return
	}
	total := stats.compileTime + stats.sortTime + stats.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[koipond] compile: %v | sort: %v | submit: %v | total: %v\n",
		stats.compileTime, stats.sortTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[koipond] commands: %d | %s\n",
		stats.commandCount, formatLayerCounts(stats.layerCounts))
}

// countLayers counts commands per layer.
func countLayers(cmds []RenderCommand) [layerCount]int {
	var counts [layerCount]int
	for i := range cmds {
		if l := cmds[i].Layer; l < layerCount {
			counts[l]++
		}
	}
	return counts
}

// formatLayerCounts renders the non-empty layers as "name=count" pairs.
func formatLayerCounts(counts [layerCount]int) string {
	var b strings.Builder
	for l, n := range counts {
		if n == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", Layer(l), n)
	}
	return b.String()
}

// warnf writes a warning line to stderr.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[koipond] warning: "+format+"\n", args...)
}
