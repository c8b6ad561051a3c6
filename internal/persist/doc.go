// Package persist moves todo stores between memory and disk.
//
// A FileStore owns a data directory holding one file per codec,
// "data.<ext>". Saves are whole-file and atomic (write to a temp file, then
// rename); with backups enabled the previous file is kept as
// "data.<ext>.bak". A DiagnosticDir holds the raw bytes written by the
// codec harness, one "<codec>.dat" file per codec.
package persist
