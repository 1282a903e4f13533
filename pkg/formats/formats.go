// Package formats provides parsers for Wavefront OBJ meshes and their MTL
// material libraries.
package formats
