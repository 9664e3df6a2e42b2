// Package market produces the job-market panel of the dashboard.
//
// Trends are generated from static Texas data and are deterministic for a
// given interest and reference date; no external jobs API is called.
package market
