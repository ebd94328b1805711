// Package collection runs compiled filters over document sources.
//
// A Scanner loads the records of a source, evaluates the query on a bounded
// worker pool and returns the matching records in source order:
//
//	scanner, err := collection.NewScanner(collection.WithWorkers(8))
//	if err != nil {
//		return err
//	}
//	defer scanner.Close()
//
//	res, err := scanner.Scan(ctx, q, source.NewDirSource("people"))
//
// Cancellation and timeouts apply to the scan loop. A single evaluation is
// never interrupted.
package collection
