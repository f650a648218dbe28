// Package i18n translates widget messages and lower-cases them per locale.
//
// Messages are grouped by category; the chart widget only uses the "plotly"
// category. A Catalog is built once and read concurrently.
package i18n
