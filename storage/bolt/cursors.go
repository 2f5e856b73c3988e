package bolt

import (
	"github.com/boltdb/bolt"
)

// ReversibleCursor walks a bucket in either direction.
type ReversibleCursor struct {
	C       *bolt.Cursor
	Reverse bool
}

func (c *ReversibleCursor) First() ([]byte, []byte) {
	if c.Reverse {
		return c.C.Last()
	}
	return c.C.First()
}

func (c *ReversibleCursor) Next() ([]byte, []byte) {
	if c.Reverse {
		return c.C.Prev()
	}
	return c.C.Next()
}

func (c *ReversibleCursor) CanContinue(val []byte) bool {
	return val != nil
}
