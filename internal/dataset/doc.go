// Package dataset reads the extracted question/answer dataset: it discovers
// subject directories, decodes their legacy-encoded data files, and extracts
// the question and answer columns of every data row.
package dataset
