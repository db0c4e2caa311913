// Package reconcile compares an external feed of journal records against
// the local catalog and turns the result into a write plan.
//
// The comparison is keyed by the electronic identifier first and the print
// identifier second. Local duplicates on either key are tolerated: the first
// journal holding a key wins and a warning is recorded on the plan. Planning
// and writing are separate steps, so a plan can be reported to an operator
// before Apply commits it in a single transaction.
package reconcile
