// Package rle implements the ESC/P "TIFF" run-length codec used by raster
// graphics payloads (ESC . 1 compression flag, and the XFER command of the
// TIFF-compressed graphics sub-machine).
package rle

// Decompress expands a TIFF-RLE compressed byte string.
//
// The first byte of each run is a counter:
//   - if its high bit is clear, it is a data-length counter: counter+1
//     literal bytes follow and are copied verbatim.
//   - if its high bit is set, it is a two's-complement repeat counter:
//     the following single byte is repeated (257-counter) times.
func Decompress(compressed []byte) []byte {
	out := make([]byte, 0, len(compressed))

	i := 0
	for i < len(compressed) {
		counter := compressed[i]
		i++

		if counter&0x80 != 0 {
			if i >= len(compressed) {
				break
			}
			repeat := 257 - int(counter)
			b := compressed[i]
			i++
			for n := 0; n < repeat; n++ {
				out = append(out, b)
			}
			continue
		}

		blockLen := int(counter) + 1
		end := i + blockLen
		if end > len(compressed) {
			end = len(compressed)
		}
		out = append(out, compressed[i:end]...)
		i = end
	}

	return out
}

// DecompressN expands exactly n bytes of compressed data, which lets the
// tokenizer determine how much of the input stream was consumed for a
// variable-length RLE payload whose decompressed size is known in advance.
//
// It returns the decompressed bytes (padded/truncated to exactly n) and the
// number of compressed bytes consumed to produce them.
func DecompressN(compressed []byte, n int) (decoded []byte, consumed int) {
	out := make([]byte, 0, n)

	i := 0
	for i < len(compressed) && len(out) < n {
		counter := compressed[i]
		i++

		if counter&0x80 != 0 {
			if i >= len(compressed) {
				break
			}
			repeat := 257 - int(counter)
			b := compressed[i]
			i++
			for k := 0; k < repeat && len(out) < n; k++ {
				out = append(out, b)
			}
			continue
		}

		blockLen := int(counter) + 1
		for k := 0; k < blockLen && i < len(compressed) && len(out) < n; k++ {
			out = append(out, compressed[i])
			i++
		}
	}

	if len(out) < n {
		out = append(out, make([]byte, n-len(out))...)
	}

	return out, i
}

// Compress produces a valid TIFF-RLE encoding of data such that
// Decompress(Compress(x)) == x for any x, using runs of identical bytes
// where that is profitable (repeat count >= 2) and literal blocks
// elsewhere. It favors simplicity and correctness over an optimal encoding.
func Compress(data []byte) []byte {
	var out []byte

	i := 0
	for i < len(data) {
		// Count a run of identical bytes starting at i.
		runLen := 1
		for i+runLen < len(data) && data[i+runLen] == data[i] && runLen < 128 {
			runLen++
		}

		if runLen >= 2 {
			counter := byte(257 - runLen)
			out = append(out, counter, data[i])
			i += runLen
			continue
		}

		// Accumulate a literal block until the next profitable run.
		start := i
		i++
		for i < len(data) {
			nextRun := 1
			for i+nextRun < len(data) && data[i+nextRun] == data[i] && nextRun < 128 {
				nextRun++
			}
			if nextRun >= 2 {
				break
			}
			i++
			if i-start >= 128 {
				break
			}
		}

		block := data[start:i]
		out = append(out, byte(len(block)-1))
		out = append(out, block...)
	}

	return out
}
