// Package testutil provides test data generators.
package testutil

import (
	"fmt"
	"time"
)

// PartitionedKeys generates keys laid out as
//
//	<start>dt=<yyyy-MM-dd>/h=<H>/<category>/part-<n>.gz
//
// for every day in [from, from+days), every hour in hours, every category and
// files files per leaf.
func PartitionedKeys(start string, from time.Time, days int, hours []int, categories []string, files int) []string {
	var keys []string
	for d := 0; d < days; d++ {
		day := from.AddDate(0, 0, d).Format("2006-01-02")
		for _, h := range hours {
			for _, c := range categories {
				for n := 0; n < files; n++ {
					keys = append(keys, fmt.Sprintf("%sdt=%s/h=%d/%s/part-%04d.gz", start, day, h, c, n))
				}
			}
		}
	}
	return keys
}
