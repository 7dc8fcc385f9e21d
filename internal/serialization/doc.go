// Package serialization reads and writes tensors in the SafeTensors format.
//
// Layout:
//
//	[8 bytes: header size (uint64 LE)]
//	[header: JSON, tensor name -> {dtype, shape, data_offsets}, optional __metadata__]
//	[tensor data: raw little-endian bytes, offsets relative to this section]
//
// Tensors are written in name order. Readers validate every entry against
// the data section before touching tensor bytes.
//
// Example:
//
//	err := serialization.WriteSafeTensors("path.safetensors", tensors, map[string]string{"steps": "3"})
//
//	tensors, metadata, err := serialization.ReadSafeTensors("path.safetensors")
package serialization
