package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module mounts a set of routes on a group.
type Module interface{ Mount(*gin.RouterGroup) }

// Modules may implement prioritizer to control mount order (lower first,
// default 100).
type prioritizer interface{ Priority() int }

// MountAll mounts mods on g in priority order.
func MountAll(g *gin.RouterGroup, mods ...Module) {
	mods = append([]Module(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		if m != nil {
			m.Mount(g)
		}
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
