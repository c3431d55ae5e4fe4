// Package containers provides the mutable collections recycled by package pooled.
//
// Every container implements Len and Clear, and Clear keeps the backing storage (slice
// capacity, map buckets, list nodes, btree nodes) so a cleared container can be refilled without
// allocating. Containers are not safe for concurrent use.
package containers
