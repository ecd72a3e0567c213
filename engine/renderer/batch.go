package renderer

import (
	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/resources"
)

// canBatch reports whether b can be folded into a without changing what is
// drawn: equal pipeline state and structurally equal material. Only adjacent
// commands are considered so command order is trivially preserved.
func canBatch(a, b *DrawCommand) bool {
	if a.Flags != b.Flags {
		return false
	}
	return a.Material.Equal(b.Material)
}

// batchCommands merges runs of adjacent compatible commands into instanced
// draws. The input slice is not modified; the result preserves submission
// order exactly.
func batchCommands(commands []DrawCommand) []DrawCommand {
	if len(commands) < 2 {
		return commands
	}

	out := make([]DrawCommand, 0, len(commands))
	for _, cmd := range commands {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if canBatch(last, &cmd) {
				last.Geometries = append(last.Geometries, cmd.Geometries...)
				last.Transforms = append(last.Transforms, cmd.Transforms...)
				continue
			}
		}
		// Copy slices so appending to a batch never aliases caller memory.
		merged := cmd
		merged.Geometries = append([]resources.Geometry(nil), cmd.Geometries...)
		merged.Transforms = append([]math.Mat4(nil), cmd.Transforms...)
		out = append(out, merged)
	}
	return out
}
