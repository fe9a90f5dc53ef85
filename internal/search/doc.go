// Package search queries the documentation search index and groups raw hits
// into the page, heading and text entries shown in the search dialog.
//
// Two backends implement Backend: AlgoliaClient talks to a hosted
// Algolia-compatible index, BleveIndex keeps a local index on disk. Both
// return hits in the hosted index's response shape so Group works on either.
package search
