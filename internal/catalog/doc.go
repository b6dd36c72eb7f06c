// Package catalog lists the AdventureWorks tables the cleaner supports and
// the policy applied to each. The Default registry keeps them in the order
// shown by the menu, so a 1-based menu number maps to the same table in
// every run mode.
package catalog
