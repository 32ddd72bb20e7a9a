package voxel

import "unsafe"

func sizeOfImpl[V any](v V) uintptr {
	return unsafe.Sizeof(v)
}
