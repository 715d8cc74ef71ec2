package types

// ListQuery binds the list endpoint query string
type ListQuery struct {
	Path string `form:"path"`
}

// ReadQuery binds the read endpoint query string
type ReadQuery struct {
	Path string `form:"path"`
}

// WalkQuery binds the walk endpoint query string
type WalkQuery struct {
	Path     string `form:"path"`
	MaxDepth int    `form:"max_depth" binding:"min=0,max=2147483647"`
}

// GlobQuery binds the glob endpoint query string
type GlobQuery struct {
	Pattern string `form:"pattern" binding:"required"`
}
