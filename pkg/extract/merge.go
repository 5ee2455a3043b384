package extract

import "sort"

// Spatial overlap above which an OCR block is considered a duplicate
// of an already-parsed block.
const dedupIoUThreshold = 0.1

// DedupMerge combines parsed and OCR blocks into one list. An OCR
// block overlapping any parsed block on the same page (IoU above the
// threshold) is already covered by the parser and dropped; the rest
// are appended. The result is in reading order (page, then vertical
// position) and tagged as merged.
func DedupMerge(parsed, ocrBlocks []Block) []Block {
	merged := make([]Block, 0, len(parsed)+len(ocrBlocks))
	merged = append(merged, parsed...)

	for _, ob := range ocrBlocks {
		covered := false
		for _, pb := range parsed {
			if pb.Page != ob.Page {
				continue
			}
			if IoU(pb.BBox, ob.BBox) > dedupIoUThreshold {
				covered = true
				break
			}
		}
		if !covered {
			merged = append(merged, ob)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Page != merged[j].Page {
			return merged[i].Page < merged[j].Page
		}
		return merged[i].BBox.Y0 < merged[j].BBox.Y0
	})

	for i := range merged {
		merged[i].SourceType = SourceTypeMerged
	}
	return merged
}
