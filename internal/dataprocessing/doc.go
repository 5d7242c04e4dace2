// Package dataprocessing reads raw well-log sources into curve sets.
//
// Three source formats are understood:
//
//   - LAS ASCII files, split on whitespace (ReadLAS). The data section can be
//     located automatically with DetectLASDataOffset.
//   - CSV exports (ReadCSV).
//   - Excel workbooks (ReadSheet), including the input template read by
//     ReadWorkbook: bit area, mud weight and a logs sheet with a header row,
//     a units row and an index column.
//
// A Loader applies the configured column mapping to each raw table with
// welllog.Extract:
//
//	loader := dataprocessing.NewLoader("TVD", logger)
//	sets, err := loader.LoadSources(ctx, cfg.Sources)
//	if err != nil {
//	    return err
//	}
//	merged, err := welllog.Merge(sets, "TVD")
package dataprocessing
