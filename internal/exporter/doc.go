// Package exporter writes merged and derived well-log curves to disk.
//
// CSVWriter writes one column per curve with "NAME [unit]" headers, streaming
// rows so long logs are never formatted in memory at once. XLSXWriter writes
// the same layout to a worksheet through excelize's stream writer, plus an
// optional summary sheet. Exporter picks between them from the output
// configuration:
//
//	err := exporter.New(logger).Export(cfg.Output, result.Curves)
package exporter
