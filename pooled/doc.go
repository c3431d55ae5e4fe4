// Package pooled provides recycled containers.
//
// Each container shape (sequence, linked sequence, hash map, linked map, identity map, set,
// sorted set, queue) has one bounded pool per element type inside a Registry. A pooled container
// embeds its plain counterpart from package containers, so it behaves exactly like it, and adds
// Close, which clears it and hands it back to the pool it came from:
//
//	seq, err := pooled.GetSequence[int]()
//	if err != nil {
//		return err
//	}
//	defer seq.Close()
//
//	seq.Append(1, 2, 3)
//
// The Get functions use the process-wide Default registry. Applications that want to own the
// pools construct a Registry with NewRegistry and use the Acquire functions instead.
//
// Byte buffers are pooled by BufferPool, which is built per call site from a supplier.
package pooled
