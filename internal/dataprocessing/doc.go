// Package dataprocessing cleans, merges, and loads the scraped draft and
// All-Pro datasets.
//
// The cleaner concatenates the per-year raw CSVs, drops repeated header rows
// and unparseable records, and normalizes player names and positions. The
// merger flags each draft pick that ever earned a First-Team All-Pro
// selection and filters the analysis cohort. An alternative excelize-based
// loader ingests PFR's combined draft workbook, which already carries AP1
// counts, producing the merged dataset without any scraping.
package dataprocessing
