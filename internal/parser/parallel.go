package parser

import (
	"runtime"
	"sync"
)

// decodeHexRecords decodes every record's geometry, serially or through a
// worker pool.
//
// Each record's decode is a pure function of its own bytes plus the
// stateless reprojector, so fan-out is safe. Results are keyed by original
// record index: positional ids and first-seen manifest order are identical
// whichever path runs.
func decodeHexRecords(records []Record, reproj Reprojector, opts ParseOptions) []DecodedRecord {
	if !opts.Parallel || len(records) < 2 {
		return decodeHexRecordsSerial(records, reproj, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(records) {
		workers = len(records)
	}

	decoded := make([]DecodedRecord, len(records))
	jobs := make(chan int, len(records))
	progress := make(chan int, len(records))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				decoded[index] = decodeHexRecord(records[index], reproj)
				progress <- index
			}
		}()
	}

	for i := range records {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(progress)
	}()

	done := 0
	for range progress {
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(records))
		}
	}

	return decoded
}

// decodeHexRecordsSerial is the reference sequential path.
func decodeHexRecordsSerial(records []Record, reproj Reprojector, opts ParseOptions) []DecodedRecord {
	decoded := make([]DecodedRecord, len(records))
	for i, rec := range records {
		decoded[i] = decodeHexRecord(rec, reproj)
		if opts.Progress != nil {
			opts.Progress(i+1, len(records))
		}
	}
	return decoded
}

// decodeHexRecord pairs one record's attributes with its decoded geometry.
func decodeHexRecord(rec Record, reproj Reprojector) DecodedRecord {
	geom, err := DecodeWKBHex(rec.GeomHex, reproj)
	return DecodedRecord{
		Columns:  rec.Columns,
		Attrs:    rec.Values,
		Geometry: geom,
		Err:      err,
	}
}
