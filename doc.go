// Package recursor walks an object store's prefix hierarchy depth first,
// recursing only into the prefixes accepted by a filter per depth, and lists
// the objects under every prefix that survives to the last depth.
//
// The walk is lazy. Nothing is listed until the output is consumed, each
// open prefix holds at most one page of its listing, and abandoning the
// output stops all further listing calls.
//
// Basic usage:
//
//	lister, err := s3list.New(ctx, "my-bucket")
//	if err != nil {
//	    return err
//	}
//
//	fs, err := filters.NewBuilder('/').
//	    After(time.Date(2019, 4, 15, 10, 0, 0, 0, time.UTC)).
//	    AddTemporalSegment("'date='yyyyMMdd").
//	    AddTemporalSegment("'hour='H").
//	    AddSegmentPattern("orders").
//	    Filters()
//	if err != nil {
//	    return err
//	}
//
//	w, err := recursor.New(lister,
//	    recursor.WithStartPrefix("activity-logs/"),
//	    recursor.WithFilters(fs...),
//	)
//	if err != nil {
//	    return err
//	}
//
//	for obj, err := range w.Objects(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(obj.Key)
//	}
//
// Listers are provided for S3 (package s3list), MinIO and other
// S3-compatible stores (package miniolist) and memory (package memlist).
package recursor
