package resource

import "github.com/arloliu/rifx/format"

// KeyLink records that the resource ChildID belongs to ParentID.
type KeyLink struct {
	ChildID  int32
	ParentID int32
	Tag      format.FourCC
}
