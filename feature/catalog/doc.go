// Package catalog implements the journal and publisher catalog feature.
//
// It keeps the local catalog in sync with an external directory by
// reconciling two artifacts: the full dump of journal records and the
// changes workbook carrying withdrawal notices.
//
// # Components
//
//   - Repository: transactional persistence for journals, publishers, links,
//     stored workbooks and settings. Every method accepts an optional caller
//     transaction; passing nil makes the call its own transaction.
//   - Service: orchestrates feed fetching, reconciliation planning and the
//     confirmed write runs.
//   - Handler: exposes read-only HTTP endpoints; the destructive runs go
//     through the CLI where they can be confirmed.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /catalog/journals : List journals (keyword, active, limit).
//   - GET /catalog/publishers : List publishers with their links.
//   - GET /catalog/pool : Connection pool usage.
//   - GET /catalog/reconcile/preview : Dry reconciliation plan.
//   - GET /catalog/withdrawals/preview : Dry withdrawal report.
package catalog
