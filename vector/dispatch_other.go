//go:build !amd64 && !arm64

package vector

func platformLevel() DispatchLevel {
	// Other architectures use the scalar kernels with 128-bit ShapeMax.
	return DispatchScalar
}
