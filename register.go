package tablature

// Decoders register themselves with the default registry.
import (
	_ "github.com/simonhull/tablature/internal/gp4"
)
