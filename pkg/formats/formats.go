// Package formats provides binary codecs for the SE asset formats:
// SEAnim (keyframed bone animation) and SEModel (bones, skinned meshes, materials).
//
// Both formats share one layout idiom: a magic tag, a version/header-size pair,
// presence-flag bytes computed from the document, then data blocks whose integer
// widths are inferred from counts written earlier in the stream.
package formats

import "errors"

// Errors shared by both SE codecs.
var (
	ErrFieldOverflow = errors.New("value does not fit its on-disk field")
	ErrUnknownBone   = errors.New("bone index or name not present in bone table")
	ErrInvalidName   = errors.New("name contains a zero byte")
)

// Note: SEAnim is implemented in seanim.go (document), seanim_write.go and seanim_read.go
// Note: SEModel is implemented in semodel.go (document), semodel_write.go and semodel_read.go
