// Package reg defines the register model shared by the dictionary and the
// servo access engine, together with the wire codec.
//
// # Register Model
//
// A Register describes one addressable drive parameter: its wire address,
// data type, access mode, physical-unit tag, optional category references,
// optional default value and numeric range. Registers come either from a
// loaded dictionary or as predefined descriptors supplied by a drive-family
// binding.
//
// # Wire Codec
//
// Multi-byte values travel in canonical network byte order (big endian),
// independent of the host. Encode and Decode convert between native Go
// scalars and wire bytes; ToPhysical and FromPhysical convert between native
// scalars and unit-scaled float64 values. FromPhysical narrows with Go
// conversion semantics, truncating toward zero.
package reg
