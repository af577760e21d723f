package analysis

import (
	"methodcost/domain/project"
)

// Partition splits project records into methodology buckets. Records with a
// methodology outside Agile/Waterfall/Hybrid land in none of the buckets but
// still count toward Total.
type Partition struct {
	Agile     []project.Project
	Waterfall []project.Project
	Hybrid    []project.Project
	Total     int
}

// PartitionByMethodology buckets records by exact methodology match,
// preserving input order within each bucket.
func PartitionByMethodology(records []project.Project) Partition {
	p := Partition{Total: len(records)}
	for _, r := range records {
		switch r.Methodology {
		case project.MethodologyAgile:
			p.Agile = append(p.Agile, r)
		case project.MethodologyWaterfall:
			p.Waterfall = append(p.Waterfall, r)
		case project.MethodologyHybrid:
			p.Hybrid = append(p.Hybrid, r)
		}
	}
	return p
}

// Unbucketed returns how many records matched no known methodology
func (p Partition) Unbucketed() int {
	return p.Total - len(p.Agile) - len(p.Waterfall) - len(p.Hybrid)
}
