package zipfmt

// Concat joins buffers into one contiguous buffer, preserving order.
// The result is always newly allocated, its length is the sum of the
// input lengths, and the inputs are never modified. Nil and empty
// buffers contribute nothing.
func Concat(bufs ...[]byte) []byte {
	total := 0
	for _, b := range bufs {
		total += len(b)
	}
	out := make([]byte, 0, total)
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out
}
