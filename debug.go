package boing

import (
	"fmt"
	"os"
)

// debugLogFrames prints frame cache statistics to stderr.
func debugLogFrames(c *FrameCache) {
	var pressPixels, releasePixels int
	for _, f := range c.Press {
		pressPixels += len(f.Pix) / 4
	}
	for _, f := range c.Release {
		releasePixels += len(f.Pix) / 4
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[boing] frame cache: press %d frames (%d px) | release %d frames (%d px) | built in %v\n",
		c.Press.Len(), pressPixels, c.Release.Len(), releasePixels, c.BuildTime)
}
