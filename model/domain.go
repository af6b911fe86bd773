// SPDX-License-Identifier: MIT
// Package model: virtual domain tags for variables.

package model

import "fmt"

// Domain is the virtual-domain tag declared for a variable. It names the
// set the variable ranges over; it does not encode numeric bounds, which
// are expressed through constraints instead.
//
// The tag set is closed: Domains() enumerates every valid value, and
// downstream classifiers validate their mapping tables against it.
type Domain int

const (
	// Any is the unrestricted continuous domain.
	Any Domain = iota
	// Reals is the set of all real numbers.
	Reals
	// PositiveReals is the set of reals strictly greater than zero.
	PositiveReals
	// NonPositiveReals is the set of reals less than or equal to zero.
	NonPositiveReals
	// NegativeReals is the set of reals strictly less than zero.
	NegativeReals
	// NonNegativeReals is the set of reals greater than or equal to zero.
	NonNegativeReals
	// PercentFraction is the closed real interval [0, 1].
	PercentFraction
	// UnitInterval is the closed real interval [0, 1].
	UnitInterval
	// Integers is the set of all integers.
	Integers
	// PositiveIntegers is the set of integers strictly greater than zero.
	PositiveIntegers
	// NonPositiveIntegers is the set of integers less than or equal to zero.
	NonPositiveIntegers
	// NegativeIntegers is the set of integers strictly less than zero.
	NegativeIntegers
	// NonNegativeIntegers is the set of integers greater than or equal to zero.
	NonNegativeIntegers
	// Boolean is the two-element set {0, 1}.
	Boolean
	// Binary is the two-element set {0, 1}.
	Binary

	// numDomains marks the end of the tag space; keep it last.
	numDomains
)

// domainNames provides the canonical string form of each tag.
var domainNames = [numDomains]string{
	Any:                 "Any",
	Reals:               "Reals",
	PositiveReals:       "PositiveReals",
	NonPositiveReals:    "NonPositiveReals",
	NegativeReals:       "NegativeReals",
	NonNegativeReals:    "NonNegativeReals",
	PercentFraction:     "PercentFraction",
	UnitInterval:        "UnitInterval",
	Integers:            "Integers",
	PositiveIntegers:    "PositiveIntegers",
	NonPositiveIntegers: "NonPositiveIntegers",
	NegativeIntegers:    "NegativeIntegers",
	NonNegativeIntegers: "NonNegativeIntegers",
	Boolean:             "Boolean",
	Binary:              "Binary",
}

// String returns the canonical tag name, or "Domain(n)" for out-of-range values.
func (d Domain) String() string {
	if d < 0 || d >= numDomains {
		return fmt.Sprintf("Domain(%d)", int(d))
	}
	return domainNames[d]
}

// Valid reports whether d is one of the enumerated tags.
func (d Domain) Valid() bool { return d >= 0 && d < numDomains }

// Domains returns every valid tag in declaration order. The slice is fresh
// on each call; callers may mutate it freely.
func Domains() []Domain {
	all := make([]Domain, numDomains)
	for i := range all {
		all[i] = Domain(i)
	}
	return all
}
