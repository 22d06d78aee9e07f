// Package csvfile stores volunteers and help requests as CSV tables.
//
// The column layout matches the spreadsheets the intake tools produce:
// volunteers are keyed by VOL_ID and requests by REQ_ID. Missing columns and
// blank cells read as empty strings, and Rating and Duration cells that do not
// parse as numbers read as 0.
package csvfile
