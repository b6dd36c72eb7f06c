package cleaning

import "fmt"

// Kind enumerates the ways a column's missing values can be handled
type Kind int

const (
	KindRetain Kind = iota
	KindSentinel
	KindZeroFill
	KindDerive
)

// String returns the name used in logs and reports
func (k Kind) String() string {
	switch k {
	case KindRetain:
		return "retain"
	case KindSentinel:
		return "sentinel"
	case KindZeroFill:
		return "zero-fill"
	case KindDerive:
		return "derive"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Disposition is the policy applied to a column. The set of implementations
// is closed: Retain, Sentinel, ZeroFill and Derive.
type Disposition interface {
	Kind() Kind
	Describe() string
	disposition()
}

// Retain leaves missing values untouched
type Retain struct {
	Reason string
}

// Sentinel replaces missing values with a fixed marker such as -1 or "NONE"
type Sentinel struct {
	Value  any
	Reason string
}

// ZeroFill replaces missing numeric values with 0
type ZeroFill struct {
	Reason string
}

// PresenceRule maps "Column has a value" to Label
type PresenceRule struct {
	Column string
	Label  string
}

// Derive adds Target, classifying each row by the first rule whose column is
// present. Rows matching no rule get Fallback.
type Derive struct {
	Target   string
	Rules    []PresenceRule
	Fallback string
	Reason   string
}

func (Retain) Kind() Kind   { return KindRetain }
func (Sentinel) Kind() Kind { return KindSentinel }
func (ZeroFill) Kind() Kind { return KindZeroFill }
func (Derive) Kind() Kind   { return KindDerive }

func (Retain) disposition()   {}
func (Sentinel) disposition() {}
func (ZeroFill) disposition() {}
func (Derive) disposition()   {}

func (d Retain) Describe() string {
	return withReason("keep nulls", d.Reason)
}

func (d Sentinel) Describe() string {
	return withReason(fmt.Sprintf("fill nulls with %#v", d.Value), d.Reason)
}

func (d ZeroFill) Describe() string {
	return withReason("fill nulls with 0", d.Reason)
}

func (d Derive) Describe() string {
	s := fmt.Sprintf("derive %s from", d.Target)
	for i, r := range d.Rules {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf(" %s=>%s", r.Column, r.Label)
	}
	s += fmt.Sprintf(" else %s", d.Fallback)
	return withReason(s, d.Reason)
}

// Classify returns the label for one row given a presence test
func (d Derive) Classify(present func(column string) bool) string {
	for _, r := range d.Rules {
		if present(r.Column) {
			return r.Label
		}
	}
	return d.Fallback
}

// Sources returns the columns the rules read, in evaluation order
func (d Derive) Sources() []string {
	cols := make([]string, len(d.Rules))
	for i, r := range d.Rules {
		cols[i] = r.Column
	}
	return cols
}

func withReason(s, reason string) string {
	if reason == "" {
		return s
	}
	return s + " (" + reason + ")"
}
